package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlatformOverrides holds partial platform configuration, loadable from YAML.
// Nil pointer fields mean "not set": they leave the current value alone.
type PlatformOverrides struct {
	CPCRange            *Range   `yaml:"cpc_range"`
	CPMRange            *Range   `yaml:"cpm_range"`
	DailyFrequencyCap   *int     `yaml:"daily_frequency_cap"`
	AlgorithmWarmupDays *int     `yaml:"algorithm_warmup_days"`
	WarmupFloor         *float64 `yaml:"warmup_floor"`
	EngagementRate      *float64 `yaml:"engagement_rate"`
	VideoCompletionRate *float64 `yaml:"video_completion_rate"`
	DailyReachRate      *float64 `yaml:"daily_reach_rate"`
}

// Apply returns cfg with every set field replaced.
func (o PlatformOverrides) Apply(cfg PlatformConfig) PlatformConfig {
	if o.CPCRange != nil {
		cfg.CPCRange = *o.CPCRange
	}
	if o.CPMRange != nil {
		cfg.CPMRange = *o.CPMRange
	}
	if o.DailyFrequencyCap != nil {
		cfg.DailyFrequencyCap = *o.DailyFrequencyCap
	}
	if o.AlgorithmWarmupDays != nil {
		cfg.AlgorithmWarmupDays = *o.AlgorithmWarmupDays
	}
	if o.WarmupFloor != nil {
		cfg.WarmupFloor = *o.WarmupFloor
	}
	if o.EngagementRate != nil {
		cfg.EngagementRate = *o.EngagementRate
	}
	if o.VideoCompletionRate != nil {
		cfg.VideoCompletionRate = *o.VideoCompletionRate
	}
	if o.DailyReachRate != nil {
		cfg.DailyReachRate = *o.DailyReachRate
	}
	return cfg
}

// PlatformBundle maps platform names to overrides.
type PlatformBundle map[Platform]PlatformOverrides

// Validate checks that every key names a known platform and that each
// override is valid on its own terms.
func (b PlatformBundle) Validate() error {
	for p, o := range b {
		if !ValidPlatforms[p] {
			return notFound("platform", string(p))
		}
		if o.CPCRange != nil {
			if err := o.CPCRange.validate("cpc_range"); err != nil {
				return fmt.Errorf("platform %s: %w", p, err)
			}
		}
		if o.CPMRange != nil {
			if err := o.CPMRange.validate("cpm_range"); err != nil {
				return fmt.Errorf("platform %s: %w", p, err)
			}
		}
		if o.DailyFrequencyCap != nil && *o.DailyFrequencyCap < 0 {
			return fmt.Errorf("platform %s: %w", p, invalid("daily_frequency_cap", "must be >= 0, got %d", *o.DailyFrequencyCap))
		}
		if o.AlgorithmWarmupDays != nil && *o.AlgorithmWarmupDays < 0 {
			return fmt.Errorf("platform %s: %w", p, invalid("algorithm_warmup_days", "must be >= 0, got %d", *o.AlgorithmWarmupDays))
		}
	}
	return nil
}

// ParsePlatformBundle decodes YAML overrides. Unknown keys are rejected.
func ParsePlatformBundle(data []byte) (PlatformBundle, error) {
	bundle := PlatformBundle{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, &ValidationError{Field: "platform config", Reason: err.Error()}
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return bundle, nil
}

// LoadPlatformBundle reads and parses a YAML platform configuration file.
func LoadPlatformBundle(path string) (PlatformBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return ParsePlatformBundle(data)
}
