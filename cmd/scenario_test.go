package cmd

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/adsim/sim"
)

func TestLoadScenario_Valid(t *testing.T) {
	// GIVEN the launch scenario on disk
	path := writeScenario(t, launchScenario)

	// WHEN it is loaded
	sc, err := LoadScenario(path)

	// THEN every section is decoded
	require.NoError(t, err)
	assert.Equal(t, int64(42), sc.Seed)
	assert.Equal(t, 7, sc.Days)
	assert.Len(t, sc.Platforms, 4)
	require.Contains(t, sc.PlatformConfig, sim.PlatformGoogle)
	assert.Equal(t, 0.6, sc.PlatformConfig[sim.PlatformGoogle].CPCRange.Min)
	require.Len(t, sc.Campaigns, 1)
	c := sc.Campaigns[0]
	assert.Equal(t, "Product Launch", c.Name)
	assert.Equal(t, 25, c.Targeting.Filters.AgeMin)
	assert.Len(t, c.Keywords, 2)
	require.Len(t, c.Groups, 1)
	assert.Equal(t, sim.PlatformFacebook, c.Groups[0].Platform)
	assert.Equal(t, "Retargeting", c.Groups[0].Name)
}

func TestAudienceDef_Profile_DefaultsMissingRatios(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, launchScenario))
	require.NoError(t, err)

	p := sc.Audiences["tech_professionals"].Profile()

	def := sim.DefaultAudienceProfile()
	assert.Equal(t, 0.8, p.DemographicsMatch)
	assert.Equal(t, def.InterestsMatch, p.InterestsMatch)
	assert.Equal(t, def.BehaviorsMatch, p.BehaviorsMatch)
	assert.Equal(t, int64(800000), p.Size)
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"unknown field", "seed: 1\nhorizon: 3\n", sim.ErrValidation},
		{"negative days", "days: -1\n", sim.ErrValidation},
		{"unknown platform override", "platform_config:\n  myspace: {}\n", sim.ErrNotFound},
		{"campaigns without audiences", "campaigns:\n  - name: x\n", sim.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Is(err, sim.ErrIO))
}

func TestScenario_Apply_BuildsCatalog(t *testing.T) {
	// GIVEN a loaded scenario and a simulator
	sc, err := LoadScenario(writeScenario(t, launchScenario))
	require.NoError(t, err)
	s, err := sim.NewSimulator(sim.SimulatorConfig{Seed: sc.Seed, Platforms: sc.Platforms})
	require.NoError(t, err)

	// WHEN it is applied
	ids, err := sc.Apply(s)

	// THEN one campaign exists per platform and the overrides are in place
	require.NoError(t, err)
	require.Len(t, ids["Product Launch"], 4)
	fb, err := s.Catalog().Campaign(ids["Product Launch"][sim.PlatformFacebook])
	require.NoError(t, err)
	assert.Len(t, fb.Groups, 2, "default ad set plus Retargeting")
	cfg, err := s.PlatformConfig(sim.PlatformGoogle)
	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.CPCRange.Min)

	g, err := s.Catalog().Campaign(ids["Product Launch"][sim.PlatformGoogle])
	require.NoError(t, err)
	assert.Len(t, g.Groups[0].Keywords, 2)
}

func TestScenario_Apply_GroupOnMissingPlatform(t *testing.T) {
	content := strings.Replace(launchScenario, "platform: facebook", "platform: tiktok", 1)
	content = strings.Replace(content, "platforms: [google, facebook, linkedin, tiktok]", "platforms: [google, facebook]", 1)
	sc, err := LoadScenario(writeScenario(t, content))
	require.NoError(t, err)
	s, err := sim.NewSimulator(sim.SimulatorConfig{Platforms: sc.Platforms})
	require.NoError(t, err)

	_, err = sc.Apply(s)

	assert.True(t, errors.Is(err, sim.ErrNotFound), "got %v", err)
}
