package platforms

import (
	"math/rand"

	"github.com/inference-sim/adsim/sim"
)

// Search volume weight by match type: looser matches enter more auctions.
var matchVolume = map[sim.MatchType]float64{
	sim.MatchExact:  1,
	sim.MatchPhrase: 2,
	sim.MatchBroad:  4,
}

// adFormat holds a format's CTR multiplier and CPC base. The CPC base is
// relative: prices scale by cpcBase over the search format's.
type adFormat struct {
	ctrMultiplier float64
	cpcBase       float64
}

var adFormats = map[sim.AdFormat]adFormat{
	sim.FormatSearch:   {ctrMultiplier: 1.0, cpcBase: 0.5},
	sim.FormatDisplay:  {ctrMultiplier: 0.3, cpcBase: 0.2},
	sim.FormatVideo:    {ctrMultiplier: 0.5, cpcBase: 0.7},
	sim.FormatShopping: {ctrMultiplier: 1.2, cpcBase: 0.6},
}

// formatFactors returns the relevance and price factors of a format.
func formatFactors(f sim.AdFormat) (relevance, price float64) {
	if f == "" {
		f = sim.FormatSearch
	}
	af, ok := adFormats[f]
	if !ok {
		af = adFormats[sim.FormatSearch]
	}
	return af.ctrMultiplier, af.cpcBase / adFormats[sim.FormatSearch].cpcBase
}

// Google is the search variant: keyword auctions billed per click.
type Google struct{}

func (*Google) Platform() sim.Platform { return sim.PlatformGoogle }
func (*Google) Pricing() sim.PricingModel { return sim.PricingCPC }

// DefaultConfig: CPC 0.50-3.00, 3 impressions per person per day, 2% of the
// audience searching on a given day, no warm-up.
func (*Google) DefaultConfig() sim.PlatformConfig {
	return sim.PlatformConfig{
		CPCRange:          sim.Range{Min: 0.5, Max: 3.0},
		CPMRange:          sim.Range{Min: 2.0, Max: 6.0},
		DailyFrequencyCap: 3,
		WarmupFloor:       0.5,
		DailyReachRate:    0.02,
	}
}

func (*Google) Labels() sim.StructureLabels {
	return sim.StructureLabels{Group: "ag", Creative: "ad", Keywords: true}
}

func (*Google) ObjectiveName(o sim.Objective) string {
	switch o {
	case sim.ObjectiveAwareness:
		return "DISPLAY"
	case sim.ObjectiveConsideration:
		return "SEARCH"
	default:
		return "CONVERSION"
	}
}

func (*Google) EffectiveReach(day int, audience sim.AudienceProfile, cfg sim.PlatformConfig) float64 {
	return cfg.BaseReach(day, audience)
}

func (*Google) RelevanceScore(unit sim.StructuralUnit) float64 {
	return sim.BaseRelevance(unit)
}

// PriceUnit prices a click over the format-scaled CPC range. Keywords with a
// quality score clear by ad rank; the rest take the market draw.
func (*Google) PriceUnit(unit sim.StructuralUnit, relevance float64, cfg sim.PlatformConfig, rng *rand.Rand) float64 {
	market := scaleRange(cfg.CPCRange, unit.PriceFactor)
	if unit.Keyword != nil && unit.Keyword.QualityScore > 0 {
		return adRankPrice(unit.Keyword.QualityScore, relevance, unit.Bid, market, rng)
	}
	return auctionPrice(relevance, unit.Bid, market, rng)
}

// Units expands every keyword into its own unit. A grouping unit without
// keywords serves as broad auto-targeting at the market midpoint bid.
func (*Google) Units(c *sim.Campaign, cfg sim.PlatformConfig) []sim.StructuralUnit {
	var units []sim.StructuralUnit
	groupShare := 1 / float64(len(c.Groups))
	for _, g := range c.Groups {
		narrowing := g.Refinement.NarrowingFactor()
		relevance, price := formatFactors(g.Format)
		if len(g.Keywords) == 0 {
			bid := cfg.CPCRange.Mid()
			units = append(units, sim.StructuralUnit{
				ID:              g.ID,
				GroupID:         g.ID,
				Keyword:         &sim.Keyword{ID: g.ID, MatchType: sim.MatchBroad, Bid: bid},
				Creatives:       g.Creatives,
				Share:           groupShare,
				ReachFactor:     narrowing,
				RelevanceFactor: relevance,
				PriceFactor:     price,
				Bid:             bid,
			})
			continue
		}
		volume := 0.0
		for _, k := range g.Keywords {
			volume += matchVolume[k.MatchType]
		}
		for i := range g.Keywords {
			k := g.Keywords[i]
			units = append(units, sim.StructuralUnit{
				ID:              k.ID,
				GroupID:         g.ID,
				Keyword:         &k,
				Creatives:       g.Creatives,
				Share:           groupShare * matchVolume[k.MatchType] / volume,
				ReachFactor:     bidCompetitiveness(k.Bid, cfg.CPCRange) * narrowing,
				RelevanceFactor: relevance,
				PriceFactor:     price,
				Bid:             k.Bid,
			})
		}
	}
	return units
}
