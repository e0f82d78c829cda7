package referral

import "testing"

func TestParseCenters(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"empty falls back to defaults", "", len(DefaultCenters), false},
		{"single entry", "Rural Clinic:+911234567890", 1, false},
		{"multiple entries", "A:+911111111111,B:+912222222222", 2, false},
		{"missing phone", "Just A Name", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCenters(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCenters(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && len(got) != tt.want {
				t.Errorf("ParseCenters(%q) returned %d centers, want %d", tt.input, len(got), tt.want)
			}
		})
	}
}

func TestParseCentersTrimsWhitespace(t *testing.T) {
	got, err := ParseCenters(" Rural Clinic : +911234567890 ")
	if err != nil {
		t.Fatalf("ParseCenters: %v", err)
	}
	if got[0].Name != "Rural Clinic" || got[0].Phone != "+911234567890" {
		t.Errorf("ParseCenters did not trim fields: %+v", got[0])
	}
}

func TestPickCenterAlwaysConfigured(t *testing.T) {
	centers := []HealthcareCenter{
		{Name: "A", Phone: "+911111111111"},
		{Name: "B", Phone: "+912222222222"},
	}
	r := NewRouter(centers)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		c := r.PickCenter()
		if c.Name != "A" && c.Name != "B" {
			t.Fatalf("PickCenter returned unknown center %+v", c)
		}
		seen[c.Name] = true
	}
	if len(seen) != 2 {
		t.Errorf("200 picks over 2 centers hit only %v", seen)
	}
}

func TestNewRouterEmptyUsesDefaults(t *testing.T) {
	r := NewRouter(nil)
	if len(r.Centers()) != len(DefaultCenters) {
		t.Errorf("NewRouter(nil) has %d centers, want defaults", len(r.Centers()))
	}
	c := r.PickCenter()
	if c.Name == "" || c.Phone == "" {
		t.Errorf("PickCenter on defaults returned empty center: %+v", c)
	}
}
