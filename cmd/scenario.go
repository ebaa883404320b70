package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/adsim/sim"
)

// Scenario is a complete simulation input, loadable from YAML.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Scenario struct {
	Seed           int64                  `yaml:"seed"`
	Days           int                    `yaml:"days"`
	Platforms      []sim.Platform         `yaml:"platforms"`
	PlatformConfig sim.PlatformBundle     `yaml:"platform_config"`
	Audiences      map[string]AudienceDef `yaml:"audiences"`
	Campaigns      []CampaignDef          `yaml:"campaigns"`
}

// AudienceDef is an audience profile in a scenario. Match ratios left out
// take the defaults of sim.DefaultAudienceProfile.
type AudienceDef struct {
	Size              int64    `yaml:"size"`
	CTRBase           float64  `yaml:"ctr_base"`
	ConversionRate    float64  `yaml:"conversion_rate"`
	DemographicsMatch *float64 `yaml:"demographics_match"`
	InterestsMatch    *float64 `yaml:"interests_match"`
	BehaviorsMatch    *float64 `yaml:"behaviors_match"`
	// Platforms to define the audience on; empty means all.
	Platforms []sim.Platform `yaml:"platforms"`
}

// Profile resolves defaults.
func (a AudienceDef) Profile() sim.AudienceProfile {
	p := sim.DefaultAudienceProfile()
	p.Size = a.Size
	p.CTRBase = a.CTRBase
	p.ConversionRate = a.ConversionRate
	if a.DemographicsMatch != nil {
		p.DemographicsMatch = *a.DemographicsMatch
	}
	if a.InterestsMatch != nil {
		p.InterestsMatch = *a.InterestsMatch
	}
	if a.BehaviorsMatch != nil {
		p.BehaviorsMatch = *a.BehaviorsMatch
	}
	return p
}

// CampaignDef is a cross-platform campaign plus optional extra grouping
// units for individual platforms.
type CampaignDef struct {
	sim.CampaignDefinition `yaml:",inline"`
	Groups                 []GroupDef `yaml:"groups"`
}

// GroupDef is an extra grouping unit on one platform.
type GroupDef struct {
	Platform             sim.Platform `yaml:"platform"`
	sim.GroupingUnitSpec `yaml:",inline"`
	Keywords             []sim.KeywordSpec  `yaml:"keywords"`
	Creatives            []sim.CreativeSpec `yaml:"creatives"`
}

// LoadScenario reads and strictly parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &sim.IOError{Op: "read", Path: path, Err: err}
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, &sim.ValidationError{Field: "scenario", Reason: err.Error()}
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks what can be checked without a simulator.
func (sc *Scenario) Validate() error {
	if sc.Days < 0 {
		return &sim.ValidationError{Field: "days", Reason: fmt.Sprintf("must be >= 0, got %d", sc.Days)}
	}
	if err := sc.PlatformConfig.Validate(); err != nil {
		return err
	}
	if len(sc.Campaigns) > 0 && len(sc.Audiences) == 0 {
		return &sim.ValidationError{Field: "audiences", Reason: "campaigns need at least one audience"}
	}
	return nil
}

// Apply defines the scenario's audiences, platform overrides and campaigns on s.
// It returns the created campaign ids per campaign name.
func (sc *Scenario) Apply(s *sim.Simulator) (map[string]map[sim.Platform]string, error) {
	if len(sc.PlatformConfig) > 0 {
		if err := s.ConfigurePlatforms(sc.PlatformConfig); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(sc.Audiences))
	for name := range sc.Audiences {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		def := sc.Audiences[name]
		platforms := def.Platforms
		if len(platforms) == 0 {
			platforms = s.Platforms()
		}
		for _, p := range platforms {
			if err := s.DefineAudience(p, name, def.Profile()); err != nil {
				return nil, fmt.Errorf("audience %q: %w", name, err)
			}
		}
	}

	ids := make(map[string]map[sim.Platform]string, len(sc.Campaigns))
	for _, cd := range sc.Campaigns {
		created, err := s.CreateCrossPlatformCampaign(cd.CampaignDefinition)
		if err != nil {
			return nil, fmt.Errorf("campaign %q: %w", cd.Name, err)
		}
		for _, g := range cd.Groups {
			if err := addGroup(s, created, g); err != nil {
				return nil, fmt.Errorf("campaign %q: %w", cd.Name, err)
			}
		}
		ids[cd.Name] = created
	}
	return ids, nil
}

func addGroup(s *sim.Simulator, created map[sim.Platform]string, g GroupDef) error {
	campaignID, ok := created[g.Platform]
	if !ok {
		return &sim.NotFoundError{Kind: "campaign platform", ID: string(g.Platform)}
	}
	groupID, err := s.CreateGroupingUnit(campaignID, g.GroupingUnitSpec)
	if err != nil {
		return err
	}
	for _, k := range g.Keywords {
		if _, err := s.AddKeyword(groupID, k); err != nil {
			return err
		}
	}
	for _, c := range g.Creatives {
		if _, err := s.CreateCreative(groupID, c); err != nil {
			return err
		}
	}
	return nil
}
