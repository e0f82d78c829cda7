// Package classify turns free-form symptom text into a structured verdict:
// is the situation critical, what first-aid advice to speak, and what
// referral line (if any) to add. Two implementations exist: a remote
// LLM-backed classifier and a deterministic keyword rule engine used as the
// offline/degraded mode. The Fallback wrapper composes them so callers never
// see an error.
package classify

import (
	"context"
	"strings"
)

// Verdict is the structured classification result. It is produced fresh per
// call and never cached; each symptom text is independent.
type Verdict struct {
	IsCritical   bool   `json:"is_critical"`
	Advice       string `json:"first_aid_advice"`
	ReferralLine string `json:"hospital_referral"`
}

// FullText is the complete spoken response: advice plus referral line.
func (v Verdict) FullText() string {
	return strings.TrimSpace(v.Advice + " " + v.ReferralLine)
}

// Classifier produces a verdict for a symptom description. Implementations
// must not fail: on any internal problem they return a safe non-critical
// verdict instead.
type Classifier interface {
	Classify(ctx context.Context, symptomText string) Verdict
}
