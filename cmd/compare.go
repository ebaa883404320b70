package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/inference-sim/adsim/sim/report"
)

var compareMetric string

// compareCmd ranks exported runs on one combined metric. The first
// directory is the baseline.
var compareCmd = &cobra.Command{
	Use:   "compare <results-dir> <results-dir>...",
	Short: "Compare exported runs on a combined metric",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := compareDirs(args, compareMetric, os.Stdout); err != nil {
			logrus.Fatalf("compare failed: %v", err)
		}
	},
}

func registerCompareFlags(c *cobra.Command) {
	c.Flags().StringVar(&compareMetric, "metric", "cpa", "Metric to rank on (ctr, cpc, cpm, cpa, roas, efficiency)")
}

func compareDirs(dirs []string, metric string, w io.Writer) error {
	reports := make([]*report.CombinedReport, len(dirs))
	for i, dir := range dirs {
		rep, err := report.LoadCombinedReport(filepath.Join(dir, report.CombinedFileName))
		if err != nil {
			return err
		}
		reports[i] = rep
	}
	cmp, err := report.Compare(dirs, reports, metric)
	if err != nil {
		return err
	}
	printComparison(w, cmp)
	return nil
}

func printComparison(w io.Writer, cmp *report.Comparison) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "=== Comparison on %s ===\n", cmp.Metric)
	for _, e := range cmp.Entries {
		p.Fprintf(w, "#%d %-30s %12.4f %+8.1f%%  run %s\n", e.Rank, e.Label, e.Value, e.Improvement*100, e.RunID)
	}
	fmt.Fprintln(w)
}
