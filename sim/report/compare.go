package report

import (
	"fmt"
	"sort"

	"github.com/inference-sim/adsim/sim"
)

// ValidMetrics is the set of metrics Compare accepts. The value reports
// whether lower is better.
var ValidMetrics = map[string]bool{
	"ctr":        false,
	"roas":       false,
	"efficiency": false,
	"cpc":        true,
	"cpm":        true,
	"cpa":        true,
}

// ComparisonEntry is one run in a comparison.
type ComparisonEntry struct {
	Label string  `json:"label"`
	RunID string  `json:"run_id"`
	Value float64 `json:"value"`
	// Improvement is relative to the baseline (first) run; positive is better.
	Improvement float64 `json:"improvement"`
	Rank        int     `json:"rank"`
}

// Comparison ranks runs on one combined metric.
type Comparison struct {
	Metric  string            `json:"metric"`
	Entries []ComparisonEntry `json:"entries"`
}

// Compare ranks combined reports on metric. The first report is the
// baseline. Entries keep input order; Rank 1 is the best.
func Compare(labels []string, reports []*CombinedReport, metric string) (*Comparison, error) {
	lowerBetter, ok := ValidMetrics[metric]
	if !ok {
		return nil, &sim.ValidationError{Field: "metric", Reason: fmt.Sprintf("unknown metric %q", metric)}
	}
	if len(reports) == 0 || len(labels) != len(reports) {
		return nil, &sim.ValidationError{Field: "reports", Reason: fmt.Sprintf("need one label per report, got %d labels for %d reports", len(labels), len(reports))}
	}

	cmp := &Comparison{Metric: metric, Entries: make([]ComparisonEntry, len(reports))}
	base := metricValue(reports[0].Combined, metric)
	for i, rep := range reports {
		v := metricValue(rep.Combined, metric)
		improvement := 0.0
		if base != 0 {
			improvement = (v - base) / base
			if lowerBetter {
				improvement = -improvement
			}
		}
		cmp.Entries[i] = ComparisonEntry{Label: labels[i], RunID: rep.RunID, Value: v, Improvement: improvement}
	}

	order := make([]int, len(cmp.Entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		va, vb := cmp.Entries[order[a]].Value, cmp.Entries[order[b]].Value
		if lowerBetter {
			return va < vb
		}
		return va > vb
	})
	for rank, idx := range order {
		cmp.Entries[idx].Rank = rank + 1
	}
	return cmp, nil
}

func metricValue(t sim.TotalMetrics, metric string) float64 {
	switch metric {
	case "ctr":
		return t.CTR
	case "roas":
		return t.ROAS
	case "efficiency":
		return t.Efficiency
	case "cpc":
		return t.CPC
	case "cpm":
		return t.CPM
	case "cpa":
		return t.CPA
	}
	return 0
}
