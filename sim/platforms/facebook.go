package platforms

import (
	"math"
	"math/rand"

	"github.com/inference-sim/adsim/sim"
)

// placement describes an inventory surface: how much of the audience it
// reaches and how its CTR compares to the main feed.
type placement struct {
	reach float64
	ctr   float64
}

var facebookPlacements = map[string]placement{
	"feed":              {reach: 1.0, ctr: 1.0},
	"stories":           {reach: 0.8, ctr: 0.9},
	"marketplace":       {reach: 0.5, ctr: 0.8},
	"video_feeds":       {reach: 0.6, ctr: 1.1},
	"right_column":      {reach: 0.3, ctr: 0.5},
	"messenger":         {reach: 0.3, ctr: 0.7},
	"audience_network":  {reach: 0.4, ctr: 0.6},
	"instagram_feed":    {reach: 0.9, ctr: 1.1},
	"instagram_stories": {reach: 0.7, ctr: 1.0},
	"instagram_reels":   {reach: 1.2, ctr: 1.4},
}

// Used for placement names not in the table.
var unknownPlacement = placement{reach: 0.5, ctr: 0.8}

// maxPlacementReach caps the combined reach of many placements.
const maxPlacementReach = 1.5

// Facebook is the social feed variant: reach auctions billed per thousand
// impressions with a learning phase.
type Facebook struct{}

func (*Facebook) Platform() sim.Platform { return sim.PlatformFacebook }
func (*Facebook) Pricing() sim.PricingModel { return sim.PricingCPM }

// DefaultConfig: CPM 5.50-11.00, 2 impressions per person per day, 5% daily
// reach, a 7-day learning phase starting at half volume.
func (*Facebook) DefaultConfig() sim.PlatformConfig {
	return sim.PlatformConfig{
		CPCRange:            sim.Range{Min: 0.4, Max: 2.0},
		CPMRange:            sim.Range{Min: 5.5, Max: 11.0},
		DailyFrequencyCap:   2,
		AlgorithmWarmupDays: 7,
		WarmupFloor:         0.5,
		EngagementRate:      0.03,
		DailyReachRate:      0.05,
	}
}

func (*Facebook) Labels() sim.StructureLabels {
	return sim.StructureLabels{Group: "as", Creative: "ad", DefaultPlacements: []string{"feed"}}
}

func (*Facebook) ObjectiveName(o sim.Objective) string {
	switch o {
	case sim.ObjectiveAwareness:
		return "BRAND_AWARENESS"
	case sim.ObjectiveConsideration:
		return "TRAFFIC"
	default:
		return "CONVERSIONS"
	}
}

func (*Facebook) EffectiveReach(day int, audience sim.AudienceProfile, cfg sim.PlatformConfig) float64 {
	return cfg.BaseReach(day, audience)
}

func (*Facebook) RelevanceScore(unit sim.StructuralUnit) float64 {
	return sim.BaseRelevance(unit)
}

func (*Facebook) PriceUnit(_ sim.StructuralUnit, _ float64, cfg sim.PlatformConfig, rng *rand.Rand) float64 {
	return flatPrice(cfg.CPMRange, rng)
}

// Units is one unit per ad set. Reach sums over placements; CTR lift is
// the placements' mean.
func (*Facebook) Units(c *sim.Campaign, _ sim.PlatformConfig) []sim.StructuralUnit {
	return groupUnits(c, func(g *sim.GroupingUnit) (float64, float64) {
		return placementFactors(g.Placements)
	})
}

func placementFactors(names []string) (reach, ctr float64) {
	if len(names) == 0 {
		return 1, 1
	}
	for _, name := range names {
		p, ok := facebookPlacements[name]
		if !ok {
			p = unknownPlacement
		}
		reach += p.reach
		ctr += p.ctr
	}
	return math.Min(reach, maxPlacementReach), ctr / float64(len(names))
}
