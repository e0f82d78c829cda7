// Package referral selects the healthcare center a critical call is
// escalated to.
package referral

import (
	"fmt"
	"math/rand"
	"strings"
)

// HealthcareCenter is a configured escalation target. The set is fixed at
// process start and treated as read-only.
type HealthcareCenter struct {
	Name  string
	Phone string
}

// DefaultCenters is used when no centers are configured.
var DefaultCenters = []HealthcareCenter{
	{Name: "Sardar Hospital", Phone: "+919999999999"},
	{Name: "City Medical Center", Phone: "+918888888888"},
}

// ParseCenters parses a "Name:phone,Name:phone" list as accepted in config
// and environment. Returns DefaultCenters for an empty string.
func ParseCenters(s string) ([]HealthcareCenter, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultCenters, nil
	}
	var centers []HealthcareCenter
	for _, entry := range strings.Split(s, ",") {
		name, phone, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("invalid healthcare center entry %q, want Name:phone", entry)
		}
		centers = append(centers, HealthcareCenter{
			Name:  strings.TrimSpace(name),
			Phone: strings.TrimSpace(phone),
		})
	}
	return centers, nil
}

// Router picks an escalation target among configured centers.
type Router struct {
	centers []HealthcareCenter
}

// NewRouter creates a Router over the given centers. An empty list falls
// back to DefaultCenters so PickCenter always has a target.
func NewRouter(centers []HealthcareCenter) *Router {
	if len(centers) == 0 {
		centers = DefaultCenters
	}
	return &Router{centers: centers}
}

// PickCenter returns a uniformly random center. At this scale random choice
// spreads load as well as round-robin without shared counter state.
func (r *Router) PickCenter() HealthcareCenter {
	return r.centers[rand.Intn(len(r.centers))]
}

// Centers returns the configured center list.
func (r *Router) Centers() []HealthcareCenter {
	return r.centers
}
