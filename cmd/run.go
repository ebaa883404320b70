package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/adsim/sim"
	"github.com/inference-sim/adsim/sim/report"
	"github.com/inference-sim/adsim/sim/trace"
)

// runOptions collects everything the run command needs. Zero values of
// Days and Seed are only applied when the matching flag was set.
type runOptions struct {
	ScenarioPath       string
	PlatformConfigPath string
	OutputDir          string
	Workers            int
	TraceLevel         string
	TraceCampaigns     []string
	Days               int
	Seed               int64
	OverrideDays       bool
	OverrideSeed       bool
	NoExport           bool
}

var runOpts runOptions

// runCmd executes a scenario and exports the results
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a campaign scenario",
	Run: func(cmd *cobra.Command, args []string) {
		runOpts.OverrideDays = cmd.Flags().Changed("days")
		runOpts.OverrideSeed = cmd.Flags().Changed("seed")
		if _, _, err := runScenario(runOpts, os.Stdout); err != nil {
			logrus.Fatalf("run failed: %v", err)
		}
	},
}

func registerRunFlags(c *cobra.Command) {
	c.Flags().StringVar(&runOpts.ScenarioPath, "scenario", "", "Path to scenario YAML (required)")
	c.Flags().StringVar(&runOpts.PlatformConfigPath, "platform-config", "", "Path to platform override YAML, applied after the scenario's own")
	c.Flags().StringVar(&runOpts.OutputDir, "output-dir", envCfg.OutputDir, "Directory for exported JSON results")
	c.Flags().IntVar(&runOpts.Workers, "workers", envCfg.Workers, "Parallel campaign workers (0 = GOMAXPROCS)")
	c.Flags().StringVar(&runOpts.TraceLevel, "trace", "none", "Decision trace level (none, pacing)")
	c.Flags().StringSliceVar(&runOpts.TraceCampaigns, "trace-campaign", nil, "Campaign ids to trace (default: all)")
	c.Flags().IntVar(&runOpts.Days, "days", 0, "Override the scenario's number of days")
	c.Flags().Int64Var(&runOpts.Seed, "seed", 0, "Override the scenario's seed")
	c.Flags().BoolVar(&runOpts.NoExport, "no-export", false, "Print the summary without writing result files")
	_ = c.MarkFlagRequired("scenario")
}

// runScenario loads, runs and exports one scenario, writing a summary to w.
func runScenario(opts runOptions, w io.Writer) (*sim.Results, []string, error) {
	sc, err := LoadScenario(opts.ScenarioPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.OverrideDays {
		sc.Days = opts.Days
	}
	if opts.OverrideSeed {
		sc.Seed = opts.Seed
	}
	if !trace.IsValidTraceLevel(opts.TraceLevel) {
		return nil, nil, &sim.ValidationError{Field: "trace", Reason: fmt.Sprintf("unknown level %q", opts.TraceLevel)}
	}

	s, err := sim.NewSimulator(sim.SimulatorConfig{
		Seed:      sc.Seed,
		Workers:   opts.Workers,
		Platforms: sc.Platforms,
		Trace:     trace.TraceConfig{Level: trace.TraceLevel(opts.TraceLevel), Campaigns: opts.TraceCampaigns},
	})
	if err != nil {
		return nil, nil, err
	}
	ids, err := sc.Apply(s)
	if err != nil {
		return nil, nil, err
	}
	if opts.PlatformConfigPath != "" {
		bundle, err := sim.LoadPlatformBundle(opts.PlatformConfigPath)
		if err != nil {
			return nil, nil, err
		}
		if err := s.ConfigurePlatforms(bundle); err != nil {
			return nil, nil, err
		}
	}
	logrus.Infof("scenario %s: %d definitions expanded to %d campaigns", opts.ScenarioPath, len(ids), s.Catalog().Len())

	results, err := s.RunCampaigns(sc.Days)
	if err != nil {
		return nil, nil, err
	}
	printSummary(w, results)
	if tr := s.LastTrace(); tr != nil {
		printTraceSummary(w, trace.Summarize(tr))
	}

	if opts.NoExport {
		return results, nil, nil
	}
	files, err := report.Export(results, opts.OutputDir)
	if err != nil {
		return results, nil, err
	}
	fmt.Fprintf(w, "Results written to %s (%d files)\n", opts.OutputDir, len(files))
	return results, files, nil
}
