package cmd

import (
	"io"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/inference-sim/adsim/sim"
	"github.com/inference-sim/adsim/sim/trace"
)

// printSummary writes a per-platform and combined table with grouped digits.
func printSummary(w io.Writer, r *sim.Results) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "=== Simulation Results (%d days, seed %d) ===\n", r.Days, r.Seed)
	p.Fprintf(w, "%-10s %14s %10s %8s %12s %8s %8s %8s %7s\n",
		"platform", "impressions", "clicks", "conv", "spend", "ctr%", "cpc", "cpa", "roas")
	for _, name := range r.PlatformNames() {
		printRow(p, w, string(name), r.Platforms[name].Total)
	}
	printRow(p, w, "combined", r.Combined)
}

func printRow(p *message.Printer, w io.Writer, label string, t sim.TotalMetrics) {
	p.Fprintf(w, "%-10s %14d %10d %8d %12.2f %8.2f %8.2f %8.2f %7.2f\n",
		label, t.Impressions, t.Clicks, t.Conversions, t.Spend, t.CTR*100, t.CPC, t.CPA, t.ROAS)
}

func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "=== Pacing Trace ===\n")
	p.Fprintf(w, "decisions %d, constrained days %d, exhausted days %d, mean utilization %.1f%%\n",
		ts.TotalDecisions, ts.ConstrainedDays, ts.ExhaustedDays, ts.MeanUtilization*100)
	for _, id := range sortedKeys(ts.FirstExhaustion) {
		p.Fprintf(w, "  %s exhausted on day %d\n", id, ts.FirstExhaustion[id])
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
