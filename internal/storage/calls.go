package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// AppendCall inserts a call record and returns it with the store-assigned id
// and creation time filled in. Ids are owned by the store: callers never
// synthesize them.
func (s *Store) AppendCall(c CallRecord) (CallRecord, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	var parent any
	if c.ParentCallID != nil {
		parent = *c.ParentCallID
	}
	res, err := s.db.Exec(`
		INSERT INTO call_logs (caller_phone, transcript, advice, is_critical, parent_call_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.CallerPhone, c.Transcript, c.Advice, c.IsCritical, parent,
		c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return CallRecord{}, fmt.Errorf("inserting call record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return CallRecord{}, fmt.Errorf("reading call record id: %w", err)
	}
	c.ID = id
	return c, nil
}

// GetCall returns the call record with the given id, or ErrNotFound.
func (s *Store) GetCall(id int64) (CallRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, caller_phone, transcript, advice, is_critical, parent_call_id, created_at
		FROM call_logs WHERE id = ?`, id)
	c, err := scanCall(row)
	if err == sql.ErrNoRows {
		return CallRecord{}, ErrNotFound
	}
	return c, err
}

// RecentCalls returns up to limit call records, newest first.
func (s *Store) RecentCalls(limit int) ([]CallRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, caller_phone, transcript, advice, is_critical, parent_call_id, created_at
		FROM call_logs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Non-nil even when empty so API consumers get [] rather than null.
	calls := []CallRecord{}
	for rows.Next() {
		c, err := scanCall(rows)
		if err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCall(row rowScanner) (CallRecord, error) {
	var c CallRecord
	var parent sql.NullInt64
	var createdAt string
	if err := row.Scan(&c.ID, &c.CallerPhone, &c.Transcript, &c.Advice, &c.IsCritical, &parent, &createdAt); err != nil {
		return CallRecord{}, err
	}
	if parent.Valid {
		c.ParentCallID = &parent.Int64
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return CallRecord{}, fmt.Errorf("parsing created_at: %w", err)
	}
	c.CreatedAt = t
	return c, nil
}

// AppendReferral inserts a referral record and returns it with the assigned
// id and creation time.
func (s *Store) AppendReferral(r ReferralRecord) (ReferralRecord, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.Exec(`
		INSERT INTO referrals (call_id, patient_phone, symptoms_summary, referred_to_hospital, hospital_phone, severity_level, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.CallID, r.PatientPhone, r.SymptomsSummary, r.ReferredToHospital,
		r.HospitalPhone, r.SeverityLevel, r.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return ReferralRecord{}, fmt.Errorf("inserting referral: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return ReferralRecord{}, fmt.Errorf("reading referral id: %w", err)
	}
	r.ID = id
	return r, nil
}

// RecentReferrals returns up to limit referrals, newest first.
func (s *Store) RecentReferrals(limit int) ([]ReferralRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, call_id, patient_phone, symptoms_summary, referred_to_hospital, hospital_phone, severity_level, created_at
		FROM referrals ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := []ReferralRecord{}
	for rows.Next() {
		var r ReferralRecord
		var createdAt string
		if err := rows.Scan(&r.ID, &r.CallID, &r.PatientPhone, &r.SymptomsSummary,
			&r.ReferredToHospital, &r.HospitalPhone, &r.SeverityLevel, &createdAt); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		r.CreatedAt = t
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

// Clear truncates both tables and resets id sequences. Administrative
// operation only; the normal lifecycle is append-only.
func (s *Store) Clear() error {
	for _, stmt := range []string{
		"DELETE FROM call_logs",
		"DELETE FROM referrals",
		"DELETE FROM sqlite_sequence WHERE name IN ('call_logs', 'referrals')",
	} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("clearing store: %w", err)
		}
	}
	return nil
}

// estimateDuration approximates call duration in seconds from conversation
// length: clamp(30, 600, chars*2). The telephony layer does not report real
// durations to this service.
func estimateDuration(transcript, advice string) int {
	d := (len(transcript) + len(advice)) * 2
	if d < 30 {
		return 30
	}
	if d > 600 {
		return 600
	}
	return d
}

// topicKeywords are the fixed dashboard topic counters, matched by substring
// over transcripts.
var topicKeywords = []struct {
	topic  string
	tokens []string
}{
	{"High Fever", []string{"fever", "bukhar"}},
	{"Pregnancy Concerns", []string{"pregnancy", "garbh"}},
	{"Child Health", []string{"child", "bacche"}},
	{"Nutrition Advice", []string{"nutrition", "khana"}},
}

// Aggregate computes dashboard statistics over all call records. It is a
// pure read: calling it repeatedly with no intervening appends yields
// identical results.
func (s *Store) Aggregate() (Stats, error) {
	calls, err := s.allCalls()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalCalls:  len(calls),
		SuccessRate: 100,
		CallsByHour: make([]HourBucket, 24),
		RecentCalls: []CallSummary{},
	}
	for h := range stats.CallsByHour {
		stats.CallsByHour[h] = HourBucket{Time: fmt.Sprintf("%02d:00", h)}
	}

	callers := make(map[string]struct{})
	totalDuration := 0
	for _, c := range calls {
		if c.IsCritical {
			stats.CriticalCalls++
		}
		callers[c.CallerPhone] = struct{}{}
		totalDuration += estimateDuration(c.Transcript, c.Advice)
		stats.CallsByHour[c.CreatedAt.Hour()].Calls++
	}
	stats.UniqueCallers = len(callers)

	if stats.TotalCalls > 0 {
		stats.SuccessRate = float64(stats.TotalCalls-stats.CriticalCalls) / float64(stats.TotalCalls) * 100
		stats.AvgDurationSeconds = float64(totalDuration) / float64(stats.TotalCalls)
	}

	for _, kw := range topicKeywords {
		count := 0
		for _, c := range calls {
			lower := strings.ToLower(c.Transcript)
			for _, tok := range kw.tokens {
				if strings.Contains(lower, tok) {
					count++
					break
				}
			}
		}
		stats.TopTopics = append(stats.TopTopics, TopicCount{Topic: kw.topic, Count: count})
	}

	// Newest five as dashboard rows. allCalls returns newest first.
	for i, c := range calls {
		if i == 5 {
			break
		}
		topic := c.Transcript
		if r := []rune(topic); len(r) > 40 {
			topic = string(r[:40]) + "..."
		}
		status := "Completed"
		if c.IsCritical {
			status = "Critical - Referred"
		}
		stats.RecentCalls = append(stats.RecentCalls, CallSummary{
			Phone:     c.CallerPhone,
			Topic:     topic,
			Status:    status,
			Duration:  estimateDuration(c.Transcript, c.Advice),
			Timestamp: c.CreatedAt.Format(time.RFC3339),
		})
	}

	return stats, nil
}

func (s *Store) allCalls() ([]CallRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, caller_phone, transcript, advice, is_critical, parent_call_id, created_at
		FROM call_logs ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calls []CallRecord
	for rows.Next() {
		c, err := scanCall(rows)
		if err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}
