// Package trace provides decision-trace recording for budget pacing analysis.
// The package does not import sim; it holds plain data types.
package trace

// PacingRecord captures one day's pacing decision for a campaign.
type PacingRecord struct {
	CampaignID string
	Platform   string
	Day        int
	Demand     float64 // cost of serving all available impressions
	Ceiling    float64 // spend allowed by the pacer
	Spend      float64
	// RemainingTotal is the lifetime budget left after the day; -1 when unlimited.
	RemainingTotal float64
	Exhausted      bool
}

// Constrained reports whether the pacer cut delivery below demand.
func (r PacingRecord) Constrained() bool {
	return r.Ceiling < r.Demand
}
