package cmd

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// EnvConfig holds process-level settings read from ADSIM_* environment
// variables. Values become flag defaults; flags win when given.
type EnvConfig struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	OutputDir string `env:"OUTPUT_DIR" envDefault:"results"`
	// Workers of 0 means GOMAXPROCS.
	Workers int `env:"WORKERS" envDefault:"0"`
}

// LoadEnvConfig reads EnvConfig from the environment.
func LoadEnvConfig() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "ADSIM_"}); err != nil {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// configureLogging applies a level name and a formatter name (text | json).
func configureLogging(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	logrus.SetLevel(lvl)
	switch format {
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", format)
	}
	return nil
}
