package sim

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Platform names an advertising network variant.
type Platform string

const (
	PlatformGoogle   Platform = "google"
	PlatformFacebook Platform = "facebook"
	PlatformLinkedIn Platform = "linkedin"
	PlatformTikTok   Platform = "tiktok"
)

// ValidPlatforms is the set of recognized platform names.
// Shared by ParsePlatform and the platform factory.
var ValidPlatforms = map[Platform]bool{
	PlatformGoogle:   true,
	PlatformFacebook: true,
	PlatformLinkedIn: true,
	PlatformTikTok:   true,
}

// ParsePlatform converts a name to a Platform.
func ParsePlatform(name string) (Platform, error) {
	p := Platform(name)
	if !ValidPlatforms[p] {
		return "", notFound("platform", name)
	}
	return p, nil
}

// SortedPlatforms returns the platforms in name order. Used wherever
// iteration order reaches output.
func SortedPlatforms(ps []Platform) []Platform {
	out := append([]Platform(nil), ps...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PricingModel is the unit a platform bills in.
type PricingModel string

const (
	PricingCPC PricingModel = "cpc"
	PricingCPM PricingModel = "cpm"
)

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Mid returns the midpoint of the interval.
func (r Range) Mid() float64 { return (r.Min + r.Max) / 2 }

// Lerp maps u in [0,1] onto the interval.
func (r Range) Lerp(u float64) float64 { return r.Min + (r.Max-r.Min)*u }

func (r Range) validate(field string) error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.Min < 0 || r.Max < r.Min {
		return invalid(field, "need 0 <= min <= max, got [%v, %v]", r.Min, r.Max)
	}
	return nil
}

// PlatformConfig holds the tunables of one platform variant.
type PlatformConfig struct {
	CPCRange Range `yaml:"cpc_range" json:"cpc_range"`
	CPMRange Range `yaml:"cpm_range" json:"cpm_range"`
	// DailyFrequencyCap is the number of impressions one person may see per day.
	DailyFrequencyCap   int     `yaml:"daily_frequency_cap" json:"daily_frequency_cap"`
	AlgorithmWarmupDays int     `yaml:"algorithm_warmup_days" json:"algorithm_warmup_days"`
	WarmupFloor         float64 `yaml:"warmup_floor" json:"warmup_floor"`
	EngagementRate      float64 `yaml:"engagement_rate" json:"engagement_rate"`
	VideoCompletionRate float64 `yaml:"video_completion_rate" json:"video_completion_rate"`
	// DailyReachRate is the share of an audience active on the platform on a given day.
	DailyReachRate float64 `yaml:"daily_reach_rate" json:"daily_reach_rate"`
}

// Validate checks ranges and ratios.
func (c PlatformConfig) Validate() error {
	if err := c.CPCRange.validate("cpc_range"); err != nil {
		return err
	}
	if err := c.CPMRange.validate("cpm_range"); err != nil {
		return err
	}
	if c.DailyFrequencyCap < 0 {
		return invalid("daily_frequency_cap", "must be >= 0, got %d", c.DailyFrequencyCap)
	}
	if c.AlgorithmWarmupDays < 0 {
		return invalid("algorithm_warmup_days", "must be >= 0, got %d", c.AlgorithmWarmupDays)
	}
	if math.IsNaN(c.WarmupFloor) || c.WarmupFloor <= 0 || c.WarmupFloor > 1 {
		return invalid("warmup_floor", "must be in (0,1], got %v", c.WarmupFloor)
	}
	ratios := []struct {
		name string
		v    float64
	}{
		{"engagement_rate", c.EngagementRate},
		{"video_completion_rate", c.VideoCompletionRate},
		{"daily_reach_rate", c.DailyReachRate},
	}
	for _, r := range ratios {
		if math.IsNaN(r.v) || r.v < 0 || r.v > 1 {
			return invalid(r.name, "must be in [0,1], got %v", r.v)
		}
	}
	return nil
}

// WarmupMultiplier ramps linearly from WarmupFloor on day 0 to 1.0 once the
// warm-up window has elapsed. Non-decreasing in day.
func (c PlatformConfig) WarmupMultiplier(day int) float64 {
	if c.AlgorithmWarmupDays <= 0 || day >= c.AlgorithmWarmupDays {
		return 1.0
	}
	if day < 0 {
		day = 0
	}
	return c.WarmupFloor + (1-c.WarmupFloor)*float64(day)/float64(c.AlgorithmWarmupDays)
}

// BaseReach is the shared capacity formula: active audience × warm-up ×
// frequency cap, in impressions.
func (c PlatformConfig) BaseReach(day int, audience AudienceProfile) float64 {
	return float64(audience.Size) * c.DailyReachRate * c.WarmupMultiplier(day) * float64(c.DailyFrequencyCap)
}

// StructureLabels names the pieces of a platform's campaign structure. Used
// to mint ids like "google-1-ag-1".
type StructureLabels struct {
	Group    string
	Creative string
	// Keywords is true when the platform accepts search keywords.
	Keywords bool
	// DefaultPlacements are applied to grouping units created without placements.
	DefaultPlacements []string
}

// StructuralUnit is the granularity the engine samples at: a keyword on
// search, a grouping unit elsewhere.
type StructuralUnit struct {
	ID        string
	GroupID   string
	Keyword   *Keyword
	Creatives []Creative
	// Share is the unit's slice of campaign reach; shares sum to 1.
	Share float64
	// ReachFactor scales the unit's share for bid competitiveness,
	// placement reach and targeting refinements.
	ReachFactor float64
	// RelevanceFactor is a platform-specific multiplier on relevance
	// (placement CTR lift, professional targeting fit).
	RelevanceFactor float64
	// PriceFactor scales the market price range (ad format cost level); 0 means 1.
	PriceFactor float64
	Bid         float64
}

// PlatformModel is the per-platform variant of the auction and delivery model.
// Implementations live in sim/platforms and register through NewPlatformModelFunc.
type PlatformModel interface {
	Platform() Platform
	Pricing() PricingModel
	DefaultConfig() PlatformConfig
	Labels() StructureLabels
	// ObjectiveName maps an objective onto the platform's own vocabulary.
	ObjectiveName(o Objective) string
	// EffectiveReach is the impression capacity for a day. Deterministic.
	EffectiveReach(day int, audience AudienceProfile, cfg PlatformConfig) float64
	RelevanceScore(unit StructuralUnit) float64
	// PriceUnit draws the cost of one billing unit (click or thousand impressions).
	PriceUnit(unit StructuralUnit, relevance float64, cfg PlatformConfig, rng *rand.Rand) float64
	Units(c *Campaign, cfg PlatformConfig) []StructuralUnit
}

// ActivityModel is implemented by platforms whose audience activity varies
// by day of week.
type ActivityModel interface {
	ActivityFactor(day int) float64
}

// QualifiedViewGate is implemented by video platforms where only clicks that
// follow a sufficiently watched view are eligible to convert.
type QualifiedViewGate interface {
	QualifiedClicks(clicks int64, cfg PlatformConfig) int64
	ConversionLift(cfg PlatformConfig) float64
}

// NewPlatformModelFunc is set by sim/platforms' init().
var NewPlatformModelFunc func(p Platform) PlatformModel

// NewPlatformModel creates the model for a platform.
// Panics if p is unrecognized or no implementation is registered.
func NewPlatformModel(p Platform) PlatformModel {
	if !ValidPlatforms[p] {
		panic(fmt.Sprintf("unknown platform %q", p))
	}
	if NewPlatformModelFunc == nil {
		panic("no platform models registered; import sim/platforms")
	}
	return NewPlatformModelFunc(p)
}

const (
	minRelevance = 1e-6
	maxRelevance = 1.5
)

// Keyword match weights applied to relevance.
var matchWeights = map[MatchType]float64{
	MatchExact:  1.0,
	MatchPhrase: 0.75,
	MatchBroad:  0.5,
}

// MatchWeight returns the relevance weight of a match type; 1.0 when absent.
func MatchWeight(m MatchType) float64 {
	if w, ok := matchWeights[m]; ok {
		return w
	}
	return 1.0
}

// CreativeFactor scores the creatives attached to a unit: 0.7 with none,
// otherwise 0.8 + 0.7 × mean quality.
func CreativeFactor(creatives []Creative) float64 {
	if len(creatives) == 0 {
		return 0.7
	}
	qualities := make([]float64, len(creatives))
	for i, c := range creatives {
		qualities[i] = c.QualityScore()
	}
	return 0.8 + 0.7*CalculateMean(qualities)
}

// BaseRelevance combines match type, creatives and the unit's platform factor
// and clamps into (0, 1.5].
func BaseRelevance(unit StructuralUnit) float64 {
	match := 1.0
	if unit.Keyword != nil {
		match = MatchWeight(unit.Keyword.MatchType)
	}
	factor := unit.RelevanceFactor
	if factor == 0 {
		factor = 1
	}
	return clamp(match*CreativeFactor(unit.Creatives)*factor, minRelevance, maxRelevance)
}
