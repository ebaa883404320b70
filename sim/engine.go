package sim

import (
	"math"
	"math/rand"
)

// Daily volume varies uniformly in [1-dailyJitter, 1+dailyJitter] around the
// platform's effective reach.
const dailyJitter = 0.2

// DayInput is everything the engine needs to sample one campaign-day.
type DayInput struct {
	Day      int
	Campaign *Campaign
	Audience AudienceProfile
	Config   PlatformConfig
	Model    PlatformModel
	Units    []StructuralUnit
	Pacer    *PacingState
	RNG      *rand.Rand
}

// DaySample is the engine's output for one campaign-day.
type DaySample struct {
	Metrics  DailyMetrics
	Units    []UnitMetrics
	Decision PacingDecision
}

// unitPlan is a unit's pre-pacing estimate for the day.
type unitPlan struct {
	capacity float64
	clickP   float64
	convP    float64
	price    float64
	imps     int64
	clicks   int64
	conv     int64
	spend    float64
}

// MetricsEngine samples daily metrics. It is stateless; all state lives in
// DayInput.
type MetricsEngine struct{}

// Sample draws one day for one campaign. The pacer is committed with the
// realized spend before returning.
func (MetricsEngine) Sample(in DayInput) DaySample {
	out := DaySample{
		Metrics: DailyMetrics{Day: in.Day},
		Units:   make([]UnitMetrics, len(in.Units)),
	}
	for i, u := range in.Units {
		out.Units[i] = UnitMetrics{UnitID: u.ID, GroupID: u.GroupID, DailyMetrics: DailyMetrics{Day: in.Day}}
	}
	if in.Pacer.Exhausted() {
		out.Decision = in.Pacer.Allocate(in.Day, 0)
		return out
	}

	capacity := in.Model.EffectiveReach(in.Day, in.Audience, in.Config) *
		in.Campaign.Targeting.Filters.NarrowingFactor()
	if act, ok := in.Model.(ActivityModel); ok {
		capacity *= act.ActivityFactor(in.Day)
	}
	capacity *= 1 - dailyJitter + 2*dailyJitter*in.RNG.Float64()

	gate, gated := in.Model.(QualifiedViewGate)
	lift := 1.0
	if gated {
		lift = gate.ConversionLift(in.Config)
	}
	cpc := in.Model.Pricing() == PricingCPC

	plans := make([]unitPlan, len(in.Units))
	demand := 0.0
	for i, u := range in.Units {
		rel := in.Model.RelevanceScore(u)
		p := unitPlan{
			capacity: capacity * u.Share * u.ReachFactor,
			clickP:   in.Audience.ClickProbability(rel),
			convP:    clamp(in.Audience.ConversionProbability(rel)*lift, 0, 1),
			price:    in.Model.PriceUnit(u, rel, in.Config, in.RNG),
		}
		demand += p.capacity * costPerImpression(p, cpc)
		plans[i] = p
	}

	decision := in.Pacer.Allocate(in.Day, demand)
	out.Decision = decision
	exposure := 0.0
	switch {
	case demand <= 0:
		// Nothing billable: delivery is bounded by capacity alone.
		exposure = 1
	case decision.Ceiling <= 0:
	case demand <= decision.Ceiling:
		exposure = 1
	default:
		exposure = decision.Ceiling / demand
	}

	for i := range plans {
		p := &plans[i]
		p.imps = floorCount(p.capacity * exposure)
		p.clicks = minInt64(p.imps, roundCount(float64(p.imps)*p.clickP))
		eligible := p.clicks
		if gated {
			eligible = minInt64(p.clicks, gate.QualifiedClicks(p.clicks, in.Config))
		}
		p.conv = minInt64(eligible, roundCount(float64(eligible)*p.convP))
		p.spend = unitSpend(*p, cpc)
	}

	// Grouping-unit sub-budgets first, then the day's ceiling.
	for _, g := range in.Campaign.Groups {
		if g.DailyBudget <= 0 {
			continue
		}
		groupSpend := 0.0
		for i, u := range in.Units {
			if u.GroupID == g.ID {
				groupSpend += plans[i].spend
			}
		}
		if groupSpend > g.DailyBudget {
			ratio := g.DailyBudget / groupSpend
			for i, u := range in.Units {
				if u.GroupID == g.ID {
					scalePlan(&plans[i], ratio, cpc)
				}
			}
		}
	}
	total := 0.0
	for _, p := range plans {
		total += p.spend
	}
	if total > decision.Ceiling {
		ratio := safeDiv(decision.Ceiling, total)
		for i := range plans {
			scalePlan(&plans[i], ratio, cpc)
		}
	}

	m := &out.Metrics
	for i, p := range plans {
		spend := floorCents(p.spend)
		value := float64(p.conv) * in.Campaign.ConversionValue
		out.Units[i].Impressions = p.imps
		out.Units[i].Clicks = p.clicks
		out.Units[i].Conversions = p.conv
		out.Units[i].Spend = spend
		out.Units[i].ConversionValue = value
		m.Impressions += p.imps
		m.Clicks += p.clicks
		m.Conversions += p.conv
		m.Spend += spend
		m.ConversionValue += value
	}
	m.Spend = math.Min(m.Spend, decision.Ceiling)
	in.Pacer.Commit(in.Day, m.Spend)
	return out
}

func costPerImpression(p unitPlan, cpc bool) float64 {
	if cpc {
		return p.price * p.clickP
	}
	return p.price / 1000
}

func unitSpend(p unitPlan, cpc bool) float64 {
	if cpc {
		return float64(p.clicks) * p.price
	}
	return float64(p.imps) * p.price / 1000
}

// scalePlan truncates a unit's counts by ratio, preserving
// conversions <= clicks <= impressions, and recomputes spend.
func scalePlan(p *unitPlan, ratio float64, cpc bool) {
	p.imps = floorCount(float64(p.imps) * ratio)
	p.clicks = minInt64(p.imps, floorCount(float64(p.clicks)*ratio))
	p.conv = minInt64(p.clicks, floorCount(float64(p.conv)*ratio))
	p.spend = unitSpend(*p, cpc)
}
