package classify

import (
	"context"
	"strings"
	"testing"
)

func TestRulesCriticalTokens(t *testing.T) {
	r := NewRules()
	texts := []string{
		"mere pet se khoon aa raha hai",
		"she is bleeding heavily",
		"patient behosh ho gaya",
		"he is unconscious",
		"saans lene mein takleef",
		"difficulty breathing since morning",
		"bacche ko jhatke aa rahe hain",
		"having a seizure",
		"tez bukhar hai",
		"very high fever for two days",
	}
	for _, text := range texts {
		v := r.Classify(context.Background(), text)
		if !v.IsCritical {
			t.Errorf("Classify(%q).IsCritical = false, want true", text)
		}
		if v.ReferralLine == "" {
			t.Errorf("Classify(%q) critical verdict missing referral line", text)
		}
	}
}

func TestRulesNonCriticalGeneric(t *testing.T) {
	r := NewRules()
	v := r.Classify(context.Background(), "mere ghutne mein halka dard hai")
	if v.IsCritical {
		t.Error("generic complaint classified critical")
	}
	if v.Advice == "" {
		t.Error("generic verdict has empty advice")
	}
	if v.ReferralLine != "" {
		t.Errorf("non-critical verdict has referral line %q", v.ReferralLine)
	}
}

func TestRulesSubjectChangesAdvice(t *testing.T) {
	r := NewRules()
	adult := r.Classify(context.Background(), "Mujhe fever hai")
	child := r.Classify(context.Background(), "Bacche ko fever hai")
	if adult.Advice == child.Advice {
		t.Error("adult and child fever should get different advice")
	}
	if adult.IsCritical || child.IsCritical {
		t.Error("plain fever should not be critical")
	}

	// Unspecified subject defaults to adult phrasing.
	unspecified := r.Classify(context.Background(), "fever since yesterday")
	if unspecified.Advice != adult.Advice {
		t.Error("unspecified subject should get adult advice")
	}
}

func TestRulesCombinedFeverCoughPrecedence(t *testing.T) {
	r := NewRules()
	combined := r.Classify(context.Background(), "Mujhe fever aur cough hai")
	feverOnly := r.Classify(context.Background(), "Mujhe fever hai")
	coughOnly := r.Classify(context.Background(), "Mujhe cough hai")

	if combined.Advice == feverOnly.Advice {
		t.Error("fever+cough matched the single-fever rule")
	}
	if combined.Advice == coughOnly.Advice {
		t.Error("fever+cough matched the single-cough rule")
	}

	// Mixed-language pair counts as combined too.
	mixed := r.Classify(context.Background(), "bukhar aur cough dono hai")
	if mixed.Advice != combined.Advice {
		t.Error("bukhar+cough should match the combined rule")
	}
}

func TestRulesVaccinationBeforeFever(t *testing.T) {
	r := NewRules()
	v := r.Classify(context.Background(), "vaccination schedule kya hai")
	if !strings.Contains(v.Advice, "BCG") {
		t.Errorf("vaccination query got advice %q", v.Advice)
	}
}

func TestRulesPregnancyNutrition(t *testing.T) {
	r := NewRules()
	v := r.Classify(context.Background(), "Pregnancy mein kya khana chahiye")
	if !strings.Contains(v.Advice, "Garbhavastha") {
		t.Errorf("pregnancy nutrition query got advice %q", v.Advice)
	}
	if v.IsCritical {
		t.Error("pregnancy nutrition question classified critical")
	}
}

func TestRulesGarbhAloneNotCritical(t *testing.T) {
	// "garbh" signals pregnancy context, not an emergency by itself.
	r := NewRules()
	v := r.Classify(context.Background(), "garbhvati ke liye kya khana chahiye")
	if v.IsCritical {
		t.Error("pregnancy mention alone should not be critical")
	}
}

func TestRulesAgricultureBranches(t *testing.T) {
	r := NewRules()
	tests := []struct {
		text string
		want string
	}{
		{"barish mein kya karein kheti ke liye", "drainage"},
		{"konsa beej lagayein is saal crop ke liye", "certified seeds"},
		{"fasal ke liye khaad kaise dalein", "Soil testing"},
		{"fasal mein keede lag gaye", "Integrated Pest Management"},
		{"kheti ke liye salah chahiye", "crop rotation"},
	}
	for _, tt := range tests {
		v := r.Classify(context.Background(), tt.text)
		if !strings.Contains(v.Advice, tt.want) {
			t.Errorf("Classify(%q) advice %q does not mention %q", tt.text, v.Advice, tt.want)
		}
		if v.IsCritical {
			t.Errorf("agriculture query %q classified critical", tt.text)
		}
	}
}

func TestVerdictFullText(t *testing.T) {
	v := Verdict{Advice: "rest well", ReferralLine: "go to hospital"}
	if got := v.FullText(); got != "rest well go to hospital" {
		t.Errorf("FullText() = %q", got)
	}
	v = Verdict{Advice: "rest well"}
	if got := v.FullText(); got != "rest well" {
		t.Errorf("FullText() without referral = %q", got)
	}
}
