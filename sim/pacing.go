package sim

import "math"

// PacingState is the budget ledger of one (campaign, platform) pair for one
// run. It is owned by a single worker and never shared.
type PacingState struct {
	DailyBudget float64
	// TotalBudget of 0 means unlimited.
	TotalBudget    float64
	RemainingTotal float64
	RemainingDaily float64
	Spent          float64
	Horizon        int
	Mode           PacingMode
	// ExhaustedDay is the first day on which the total budget ran out, -1 if never.
	ExhaustedDay int
}

// PacingDecision records what the pacer allowed for one day.
type PacingDecision struct {
	Day     int
	Demand  float64
	Ceiling float64
}

// NewPacingState creates a fresh ledger for a campaign over horizon days.
func NewPacingState(c *Campaign, horizon int) *PacingState {
	remaining := math.Inf(1)
	if c.TotalBudget > 0 {
		remaining = c.TotalBudget
	}
	return &PacingState{
		DailyBudget:    c.DailyBudget,
		TotalBudget:    c.TotalBudget,
		RemainingTotal: remaining,
		Horizon:        horizon,
		Mode:           c.Pacing,
		ExhaustedDay:   -1,
	}
}

// Exhausted reports whether the total budget has run out.
func (p *PacingState) Exhausted() bool {
	return p.RemainingTotal < minSpendUnit
}

// Allocate opens a day and returns the spend ceiling for a day whose
// unconstrained cost would be demand: min(daily budget, remaining total,
// demand). Even pacing also caps at remaining total / days left.
func (p *PacingState) Allocate(day int, demand float64) PacingDecision {
	p.RemainingDaily = math.Min(p.DailyBudget, p.RemainingTotal)
	if p.Exhausted() {
		p.RemainingDaily = 0
		return PacingDecision{Day: day, Demand: demand}
	}
	ceiling := math.Min(p.RemainingDaily, math.Max(demand, 0))
	if p.Mode == PacingEven && p.TotalBudget > 0 {
		if daysLeft := p.Horizon - day; daysLeft > 0 {
			ceiling = math.Min(ceiling, p.RemainingTotal/float64(daysLeft))
		}
	}
	return PacingDecision{Day: day, Demand: demand, Ceiling: ceiling}
}

// Commit deducts the day's realized spend.
func (p *PacingState) Commit(day int, spend float64) {
	p.Spent += spend
	p.RemainingDaily -= spend
	p.RemainingTotal -= spend
	if p.ExhaustedDay < 0 && p.Exhausted() {
		p.ExhaustedDay = day
	}
}
