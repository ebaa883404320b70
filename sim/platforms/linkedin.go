package platforms

import (
	"math/rand"

	"github.com/inference-sim/adsim/sim"
)

// Professional targeting dimensions and how much each narrows and sharpens
// delivery. Weights sum to 1.
var linkedinDimensions = map[string]float64{
	"job_title":    0.3,
	"seniority":    0.2,
	"industry":     0.2,
	"company_size": 0.15,
	"skills":       0.15,
}

// Weekend activity relative to weekdays. Day 0 is a Monday.
const linkedinWeekendFactor = 0.4

// LinkedIn is the professional feed variant: expensive CPM, weekday-heavy
// activity and precise professional targeting.
type LinkedIn struct{}

func (*LinkedIn) Platform() sim.Platform { return sim.PlatformLinkedIn }
func (*LinkedIn) Pricing() sim.PricingModel { return sim.PricingCPM }

// DefaultConfig: CPM 5.00-25.00, one impression per person per day, 3%
// daily reach, no warm-up.
func (*LinkedIn) DefaultConfig() sim.PlatformConfig {
	return sim.PlatformConfig{
		CPCRange:          sim.Range{Min: 2.0, Max: 8.0},
		CPMRange:          sim.Range{Min: 5.0, Max: 25.0},
		DailyFrequencyCap: 1,
		WarmupFloor:       0.5,
		EngagementRate:    0.01,
		DailyReachRate:    0.03,
	}
}

func (*LinkedIn) Labels() sim.StructureLabels {
	return sim.StructureLabels{Group: "cg", Creative: "cr"}
}

func (*LinkedIn) ObjectiveName(o sim.Objective) string {
	switch o {
	case sim.ObjectiveAwareness:
		return "BRAND_AWARENESS"
	case sim.ObjectiveConsideration:
		return "WEBSITE_VISITS"
	default:
		return "WEBSITE_CONVERSIONS"
	}
}

func (*LinkedIn) EffectiveReach(day int, audience sim.AudienceProfile, cfg sim.PlatformConfig) float64 {
	return cfg.BaseReach(day, audience)
}

// ActivityFactor drops weekend volume (days 5 and 6 of each week).
func (*LinkedIn) ActivityFactor(day int) float64 {
	if day%7 >= 5 {
		return linkedinWeekendFactor
	}
	return 1.0
}

func (*LinkedIn) RelevanceScore(unit sim.StructuralUnit) float64 {
	return sim.BaseRelevance(unit)
}

func (*LinkedIn) PriceUnit(_ sim.StructuralUnit, _ float64, cfg sim.PlatformConfig, rng *rand.Rand) float64 {
	return flatPrice(cfg.CPMRange, rng)
}

// Units is one unit per campaign group. Professional targeting narrows reach
// and raises relevance in proportion to the dimensions used.
func (*LinkedIn) Units(c *sim.Campaign, _ sim.PlatformConfig) []sim.StructuralUnit {
	score := targetingScore(c.Targeting.Filters.Attributes)
	return groupUnits(c, func(*sim.GroupingUnit) (float64, float64) {
		return 1 - 0.4*score, 0.8 + 0.4*score
	})
}

// targetingScore is the summed weight of the recognized dimensions present, in [0,1].
func targetingScore(attrs map[string][]string) float64 {
	score := 0.0
	for dim, values := range attrs {
		if len(values) > 0 {
			score += linkedinDimensions[dim]
		}
	}
	if score > 1 {
		score = 1
	}
	return score
}
