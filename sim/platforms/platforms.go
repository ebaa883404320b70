// Package platforms implements the per-network variants of sim.PlatformModel.
package platforms

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/inference-sim/adsim/sim"
)

// New returns the model for a platform. Panics on an unknown name.
func New(p sim.Platform) sim.PlatformModel {
	switch p {
	case sim.PlatformGoogle:
		return &Google{}
	case sim.PlatformFacebook:
		return &Facebook{}
	case sim.PlatformLinkedIn:
		return &LinkedIn{}
	case sim.PlatformTikTok:
		return &TikTok{}
	default:
		panic(fmt.Sprintf("unknown platform %q", p))
	}
}

const minPrice = 0.01

// bidCompetitiveness scales volume by how a bid compares to the middle of the
// market's price range. Bids at or above the midpoint win full volume.
func bidCompetitiveness(bid float64, market sim.Range) float64 {
	mid := market.Mid()
	if bid <= 0 || mid <= 0 {
		return 1
	}
	return math.Max(0.3, math.Min(1, bid/mid))
}

// referenceQuality is the quality score of the competing advertiser in an
// ad-rank auction.
const referenceQuality = 5.0

// marketDraw draws a clearing price in cpcRange with the draw biased upward by
// relevance (E[u^(1/r)] = r/(r+1)): relevant placements enter pricier auctions.
func marketDraw(relevance float64, cpcRange sim.Range, rng *rand.Rand) float64 {
	return cpcRange.Lerp(math.Pow(rng.Float64(), 1/relevance))
}

// auctionPrice draws a CPC from the market, capped at the bid.
func auctionPrice(relevance, bid float64, cpcRange sim.Range, rng *rand.Rand) float64 {
	return capAtBid(marketDraw(relevance, cpcRange, rng), bid)
}

// adRankPrice prices a click by ad rank: the competitor's rank (a market bid
// times referenceQuality) divided by the keyword's quality score, plus one
// cent, capped at the bid.
func adRankPrice(qualityScore, relevance, bid float64, cpcRange sim.Range, rng *rand.Rand) float64 {
	competitorRank := marketDraw(relevance, cpcRange, rng) * referenceQuality
	return capAtBid(competitorRank/qualityScore+minPrice, bid)
}

func capAtBid(price, bid float64) float64 {
	if bid > 0 {
		price = math.Min(price, bid)
	}
	return math.Max(price, minPrice)
}

// scaleRange multiplies both ends of r by f; f <= 0 leaves r unchanged.
func scaleRange(r sim.Range, f float64) sim.Range {
	if f <= 0 {
		return r
	}
	return sim.Range{Min: r.Min * f, Max: r.Max * f}
}

// flatPrice draws a CPM uniformly from the configured range.
func flatPrice(cpmRange sim.Range, rng *rand.Rand) float64 {
	return math.Max(cpmRange.Lerp(rng.Float64()), minPrice)
}

// groupUnits builds one unit per grouping unit with an equal share.
// factors returns the unit's reach and relevance factors.
func groupUnits(c *sim.Campaign, factors func(g *sim.GroupingUnit) (reach, relevance float64)) []sim.StructuralUnit {
	units := make([]sim.StructuralUnit, 0, len(c.Groups))
	for _, g := range c.Groups {
		reach, relevance := factors(g)
		units = append(units, sim.StructuralUnit{
			ID:              g.ID,
			GroupID:         g.ID,
			Creatives:       g.Creatives,
			Share:           1 / float64(len(c.Groups)),
			ReachFactor:     reach * g.Refinement.NarrowingFactor(),
			RelevanceFactor: relevance,
		})
	}
	return units
}
