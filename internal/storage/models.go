package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// CallRecord is one handled interaction, initial or follow-up. Records are
// append-only: they are never mutated after creation, only bulk-cleared by
// the administrative Clear operation.
type CallRecord struct {
	ID           int64     `json:"id"`
	CallerPhone  string    `json:"caller_phone"`
	Transcript   string    `json:"transcript"`
	Advice       string    `json:"advice"`
	IsCritical   bool      `json:"is_critical"`
	ParentCallID *int64    `json:"parent_call_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReferralRecord is created once per critical call when it is escalated to a
// healthcare center.
type ReferralRecord struct {
	ID                 int64     `json:"id"`
	CallID             int64     `json:"call_id"`
	PatientPhone       string    `json:"patient_phone"`
	SymptomsSummary    string    `json:"symptoms_summary"`
	ReferredToHospital string    `json:"referred_to_hospital"`
	HospitalPhone      string    `json:"hospital_phone"`
	SeverityLevel      string    `json:"severity_level"`
	CreatedAt          time.Time `json:"created_at"`
}

// HourBucket is one hour-of-day slot in the call volume histogram.
type HourBucket struct {
	Time  string `json:"time"`
	Calls int    `json:"calls"`
}

// TopicCount is a keyword-matched topic counter over transcripts.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// CallSummary is the condensed recent-call row the dashboard shows.
type CallSummary struct {
	Phone     string `json:"phone"`
	Topic     string `json:"topic"`
	Status    string `json:"status"`
	Duration  int    `json:"duration"`
	Timestamp string `json:"timestamp"`
}

// Stats is the aggregate shape served to the dashboard.
//
// AvgDurationSeconds is ESTIMATED from transcript and advice length
// (clamp(30, 600, chars*2) seconds), not measured by the telephony layer.
// Consumers must treat it as a proxy.
type Stats struct {
	TotalCalls         int           `json:"totalCalls"`
	CriticalCalls      int           `json:"criticalCalls"`
	SuccessRate        float64       `json:"successRate"`
	AvgDurationSeconds float64       `json:"avgDuration"`
	UniqueCallers      int           `json:"uniqueUsers"`
	CallsByHour        []HourBucket  `json:"callsByHour"`
	TopTopics          []TopicCount  `json:"topQuestions"`
	RecentCalls        []CallSummary `json:"recentCalls"`
}
