package report

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/inference-sim/adsim/sim"
)

// Distribution captures the spread of a daily series.
type Distribution struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P95    float64 `json:"p95"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// NewDistribution computes a Distribution from raw values.
// Returns zero-value Distribution for empty input.
func NewDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return Distribution{
		Mean:   mean,
		StdDev: std,
		P50:    stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Count:  len(sorted),
	}
}

// CampaignSummary describes how a campaign's delivery varied day to day.
type CampaignSummary struct {
	CampaignID  string       `json:"campaign_id"`
	Spend       Distribution `json:"daily_spend"`
	Impressions Distribution `json:"daily_impressions"`
	// ActiveDays counts days with at least one impression.
	ActiveDays int `json:"active_days"`
}

// Summarize computes the daily distributions of one campaign.
func Summarize(cr *sim.CampaignResult) CampaignSummary {
	spend := make([]float64, len(cr.Daily))
	imps := make([]float64, len(cr.Daily))
	active := 0
	for i, d := range cr.Daily {
		spend[i] = d.Spend
		imps[i] = float64(d.Impressions)
		if d.Impressions > 0 {
			active++
		}
	}
	return CampaignSummary{
		CampaignID:  cr.CampaignID,
		Spend:       NewDistribution(spend),
		Impressions: NewDistribution(imps),
		ActiveDays:  active,
	}
}
