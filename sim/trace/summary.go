package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions  int
	ConstrainedDays int
	ExhaustedDays   int
	// MeanUtilization is the mean of spend/ceiling over days with a positive ceiling.
	MeanUtilization float64
	// FirstExhaustion maps campaign ID → first exhausted day.
	FirstExhaustion map[string]int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		FirstExhaustion: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Pacing)
	utilization, counted := 0.0, 0
	for _, r := range st.Pacing {
		if r.Constrained() {
			summary.ConstrainedDays++
		}
		if r.Exhausted {
			summary.ExhaustedDays++
			if _, seen := summary.FirstExhaustion[r.CampaignID]; !seen {
				summary.FirstExhaustion[r.CampaignID] = r.Day
			}
		}
		if r.Ceiling > 0 {
			utilization += r.Spend / r.Ceiling
			counted++
		}
	}
	if counted > 0 {
		summary.MeanUtilization = utilization / float64(counted)
	}
	return summary
}
