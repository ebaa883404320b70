package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/adsim/sim"
)

// defaultsCmd prints the built-in platform configurations as a
// platform-config YAML document that run --platform-config accepts.
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print default platform configurations as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeDefaults(os.Stdout); err != nil {
			logrus.Fatalf("printing defaults: %v", err)
		}
	},
}

func writeDefaults(w io.Writer) error {
	bundle := sim.PlatformBundle{}
	for p := range sim.ValidPlatforms {
		cfg := sim.NewPlatformModel(p).DefaultConfig()
		bundle[p] = overridesFor(cfg)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(bundle); err != nil {
		return fmt.Errorf("encoding defaults: %w", err)
	}
	return enc.Close()
}

func overridesFor(cfg sim.PlatformConfig) sim.PlatformOverrides {
	return sim.PlatformOverrides{
		CPCRange:            &cfg.CPCRange,
		CPMRange:            &cfg.CPMRange,
		DailyFrequencyCap:   &cfg.DailyFrequencyCap,
		AlgorithmWarmupDays: &cfg.AlgorithmWarmupDays,
		WarmupFloor:         &cfg.WarmupFloor,
		EngagementRate:      &cfg.EngagementRate,
		VideoCompletionRate: &cfg.VideoCompletionRate,
		DailyReachRate:      &cfg.DailyReachRate,
	}
}
