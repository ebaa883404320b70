package sim

import (
	"math"
	"sync"

	"github.com/sirupsen/logrus"
)

// AudienceProfile describes a targetable population on one platform.
// Ratios are in [0,1]; Size is the number of reachable people.
type AudienceProfile struct {
	Size              int64   `yaml:"size" json:"size"`
	CTRBase           float64 `yaml:"ctr_base" json:"ctr_base"`
	ConversionRate    float64 `yaml:"conversion_rate" json:"conversion_rate"`
	DemographicsMatch float64 `yaml:"demographics_match" json:"demographics_match"`
	InterestsMatch    float64 `yaml:"interests_match" json:"interests_match"`
	BehaviorsMatch    float64 `yaml:"behaviors_match" json:"behaviors_match"`
}

// DefaultAudienceProfile returns the match ratios used when a definition
// leaves them out. Size and rates have no sensible default.
func DefaultAudienceProfile() AudienceProfile {
	return AudienceProfile{
		DemographicsMatch: 0.7,
		InterestsMatch:    0.6,
		BehaviorsMatch:    0.5,
	}
}

// Validate checks that the size is non-negative and every ratio is in [0,1].
func (a AudienceProfile) Validate() error {
	if a.Size < 0 {
		return invalid("audience size", "must be >= 0, got %d", a.Size)
	}
	ratios := []struct {
		name string
		v    float64
	}{
		{"ctr_base", a.CTRBase},
		{"conversion_rate", a.ConversionRate},
		{"demographics_match", a.DemographicsMatch},
		{"interests_match", a.InterestsMatch},
		{"behaviors_match", a.BehaviorsMatch},
	}
	for _, r := range ratios {
		if math.IsNaN(r.v) || r.v < 0 || r.v > 1 {
			return invalid(r.name, "must be in [0,1], got %v", r.v)
		}
	}
	return nil
}

// ClickProbability is the per-impression click likelihood for a unit with
// the given relevance. Always in [0,1].
func (a AudienceProfile) ClickProbability(relevance float64) float64 {
	return clamp(a.CTRBase*a.DemographicsMatch*a.InterestsMatch*a.BehaviorsMatch*relevance, 0, 1)
}

// ConversionProbability is the per-click conversion likelihood for a unit
// with the given relevance. Always in [0,1].
func (a AudienceProfile) ConversionProbability(relevance float64) float64 {
	return clamp(a.ConversionRate*relevance, 0, 1)
}

// AudienceRegistry stores named audience profiles per platform.
// Profiles are copied on write and on read; campaigns hold names only.
type AudienceRegistry struct {
	mu       sync.RWMutex
	profiles map[Platform]map[string]AudienceProfile
}

// NewAudienceRegistry creates an empty registry.
func NewAudienceRegistry() *AudienceRegistry {
	return &AudienceRegistry{profiles: make(map[Platform]map[string]AudienceProfile)}
}

// Define stores a profile under (platform, name). Last write wins.
func (r *AudienceRegistry) Define(platform Platform, name string, profile AudienceProfile) error {
	if name == "" {
		return invalid("audience name", "must not be empty")
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	byName, ok := r.profiles[platform]
	if !ok {
		byName = make(map[string]AudienceProfile)
		r.profiles[platform] = byName
	}
	if _, exists := byName[name]; exists {
		logrus.Warnf("audience %q on %s redefined; previous profile replaced", name, platform)
	}
	byName[name] = profile
	return nil
}

// Lookup returns the profile stored under (platform, name).
func (r *AudienceRegistry) Lookup(platform Platform, name string) (AudienceProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[platform][name]
	if !ok {
		return AudienceProfile{}, notFound("audience", string(platform)+"/"+name)
	}
	return profile, nil
}
