package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	// Registers the google, facebook, linkedin and tiktok models.
	_ "github.com/inference-sim/adsim/sim/platforms"
)

var (
	envCfg    EnvConfig // Defaults read from ADSIM_* variables
	envErr    error     // Deferred so a bad variable surfaces as a command error
	logLevel  string    // Log verbosity level
	logFormat string    // Log formatter: text or json
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "adsim",
	Short: "Digital twin of ad-serving pipelines across search and social platforms",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envErr != nil {
			return envErr
		}
		return configureLogging(logLevel, logFormat)
	},
	SilenceUsage: true,
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func init() {
	envCfg, envErr = LoadEnvConfig()
	if envErr != nil {
		envCfg = EnvConfig{LogLevel: "warn", LogFormat: "text", OutputDir: "results"}
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log", envCfg.LogLevel, "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", envCfg.LogFormat, "Log format (text, json)")

	registerRunFlags(runCmd)
	registerCompareFlags(compareCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(compareCmd)
}
