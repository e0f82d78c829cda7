package classify

import (
	"context"
	"strings"
)

// criticalTokens flag an emergency regardless of category. The list mixes
// romanized Hindi and English because callers use both.
var criticalTokens = []string{
	"khoon", "bleed", "bleeding",
	"behosh", "unconscious",
	"saans", "breath", "breathing",
	"jhatke", "seizure",
	"tez bukhar", "high fever",
}

const (
	criticalAdvice   = "Mariz ko unki left side par litayein aur turant medical help bulayein. Kuch bhi khane ya peene ko na dein."
	criticalReferral = "Aapko turant aspataal jaana chahiye!"
	genericAdvice    = "Keep the patient calm and rested, give plenty of fluids, and consult a doctor if the symptoms persist or worsen."
)

// subject is who the symptoms are about. Unspecified defaults to adult.
type subject int

const (
	subjectAdult subject = iota
	subjectChild
)

var (
	adultTokens = []string{"mujhe", "mere ko", "mai", "meri patni", "pati"}
	childTokens = []string{"bacche", "baccha", "child", "baby"}
)

func detectSubject(lower string) subject {
	for _, t := range childTokens {
		if strings.Contains(lower, t) {
			return subjectChild
		}
	}
	return subjectAdult
}

// rule pairs a match predicate with an advice builder. Rules are evaluated
// in order and the first match wins, so the fever+cough combined rule must
// stay ahead of the single fever and cough rules.
type rule struct {
	name    string
	match   func(lower string) bool
	respond func(lower string) string
}

func containsAny(lower string, tokens ...string) bool {
	for _, t := range tokens {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// Rules is the deterministic keyword classifier. It is the fallback when the
// remote backend is disabled or failing, and the only classifier in offline
// installations.
type Rules struct {
	rules []rule
}

// NewRules builds the rule engine with the fixed category order.
func NewRules() *Rules {
	return &Rules{rules: []rule{
		{
			name:    "vaccination",
			match:   func(l string) bool { return containsAny(l, "vaccin", "tikakaran", "immuniz") },
			respond: func(string) string { return vaccinationAdvice },
		},
		{
			name: "pregnancy-nutrition",
			match: func(l string) bool {
				return containsAny(l, "pregnan", "garbh") &&
					containsAny(l, "khana", "kya", "chahiye", "eat", "food", "diet", "nutrition")
			},
			respond: func(string) string { return pregnancyNutritionAdvice },
		},
		{
			// Combined symptoms need combined advice; this must be checked
			// before the single-symptom fever and cough rules.
			name: "fever-and-cough",
			match: func(l string) bool {
				return (strings.Contains(l, "fever") || strings.Contains(l, "bukhar")) &&
					(strings.Contains(l, "cough") || strings.Contains(l, "khansi"))
			},
			respond: func(l string) string {
				if detectSubject(l) == subjectChild {
					return feverCoughChildAdvice
				}
				return feverCoughAdultAdvice
			},
		},
		{
			name:  "fever",
			match: func(l string) bool { return containsAny(l, "fever", "bukhar") },
			respond: func(l string) string {
				if detectSubject(l) == subjectChild {
					return feverChildAdvice
				}
				return feverAdultAdvice
			},
		},
		{
			name:  "cough",
			match: func(l string) bool { return containsAny(l, "khansi", "cough") },
			respond: func(l string) string {
				if detectSubject(l) == subjectChild {
					return coughChildAdvice
				}
				return coughAdultAdvice
			},
		},
		{
			name: "agriculture",
			match: func(l string) bool {
				return containsAny(l, "kheti", "fasal", "crop", "farming", "agriculture",
					"kisan", "farmer", "mausam", "weather", "barish", "rain")
			},
			respond: agricultureAdvice,
		},
	}}
}

// Classify applies the critical-token check and then the ordered category
// rules. It never fails.
func (r *Rules) Classify(_ context.Context, symptomText string) Verdict {
	lower := strings.ToLower(symptomText)

	if containsAny(lower, criticalTokens...) {
		return Verdict{
			IsCritical:   true,
			Advice:       criticalAdvice,
			ReferralLine: criticalReferral,
		}
	}

	for _, rl := range r.rules {
		if rl.match(lower) {
			return Verdict{Advice: rl.respond(lower)}
		}
	}
	return Verdict{Advice: genericAdvice}
}

// agriculture has its own sub-branches keyed on the specific query.
func agricultureAdvice(lower string) string {
	switch {
	case containsAny(lower, "mausam", "weather", "barish", "rain"):
		return agriWeatherAdvice
	case containsAny(lower, "beej", "seed"):
		return agriSeedAdvice
	case containsAny(lower, "khaad", "fertilizer", "khad"):
		return agriFertilizerAdvice
	case containsAny(lower, "keede", "pest", "disease", "bimari"):
		return agriPestAdvice
	default:
		return agriGeneralAdvice
	}
}
