package platforms

import (
	"math"
	"math/rand"

	"github.com/inference-sim/adsim/sim"
)

// TikTok is the short-video variant: CPM auctions, an algorithm warm-up, and
// conversions gated on watching the video.
type TikTok struct{}

func (*TikTok) Platform() sim.Platform { return sim.PlatformTikTok }
func (*TikTok) Pricing() sim.PricingModel { return sim.PricingCPM }

// DefaultConfig: CPM 3.00-10.00, 4 impressions per person per day, 8% daily
// reach, 5-day warm-up, 35% of views watched through.
func (*TikTok) DefaultConfig() sim.PlatformConfig {
	return sim.PlatformConfig{
		CPCRange:            sim.Range{Min: 0.2, Max: 1.5},
		CPMRange:            sim.Range{Min: 3.0, Max: 10.0},
		DailyFrequencyCap:   4,
		AlgorithmWarmupDays: 5,
		WarmupFloor:         0.5,
		EngagementRate:      0.06,
		VideoCompletionRate: 0.35,
		DailyReachRate:      0.08,
	}
}

func (*TikTok) Labels() sim.StructureLabels {
	return sim.StructureLabels{Group: "ag", Creative: "ad", DefaultPlacements: []string{"for_you"}}
}

func (*TikTok) ObjectiveName(o sim.Objective) string {
	switch o {
	case sim.ObjectiveAwareness:
		return "REACH"
	case sim.ObjectiveConsideration:
		return "TRAFFIC"
	default:
		return "CONVERSIONS"
	}
}

func (*TikTok) EffectiveReach(day int, audience sim.AudienceProfile, cfg sim.PlatformConfig) float64 {
	return cfg.BaseReach(day, audience)
}

func (*TikTok) RelevanceScore(unit sim.StructuralUnit) float64 {
	return sim.BaseRelevance(unit)
}

func (*TikTok) PriceUnit(_ sim.StructuralUnit, _ float64, cfg sim.PlatformConfig, rng *rand.Rand) float64 {
	return flatPrice(cfg.CPMRange, rng)
}

// Units is one unit per ad group. Groups without a video creative lose relevance.
func (*TikTok) Units(c *sim.Campaign, _ sim.PlatformConfig) []sim.StructuralUnit {
	return groupUnits(c, func(g *sim.GroupingUnit) (float64, float64) {
		for _, cr := range g.Creatives {
			if cr.VideoURL != "" {
				return 1, 1.1
			}
		}
		return 1, 0.8
	})
}

// QualifiedClicks keeps the clicks that followed a completed view.
func (*TikTok) QualifiedClicks(clicks int64, cfg sim.PlatformConfig) int64 {
	return int64(math.Round(float64(clicks) * cfg.VideoCompletionRate))
}

// ConversionLift raises conversion probability for engaged viewers.
func (*TikTok) ConversionLift(cfg sim.PlatformConfig) float64 {
	return 1 + cfg.EngagementRate
}
