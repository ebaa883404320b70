package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/adsim/sim"
)

// TestExampleScenario_ProductLaunch verifies that product-launch.yaml loads
// and runs with the shipped platform overrides.
func TestExampleScenario_ProductLaunch(t *testing.T) {
	// GIVEN the shipped example files
	scenario := filepath.Join("..", "examples", "product-launch.yaml")
	overrides := filepath.Join("..", "examples", "platform-overrides.yaml")

	sc, err := LoadScenario(scenario)
	require.NoError(t, err, "failed to load product-launch.yaml")
	require.Len(t, sc.Campaigns, 1)
	require.Len(t, sc.Campaigns[0].Groups, 2)
	assert.Equal(t, sim.FormatShopping, sc.Campaigns[0].Groups[0].Format)
	assert.Equal(t, 8.0, sc.Campaigns[0].Groups[0].Keywords[0].QualityScore)

	// WHEN the scenario runs
	results, _, err := runScenario(runOptions{ScenarioPath: scenario, PlatformConfigPath: overrides, NoExport: true}, &bytes.Buffer{})

	// THEN every platform ran within its budget
	require.NoError(t, err)
	assert.Equal(t, 7, results.Days)
	for _, p := range results.PlatformNames() {
		assert.LessOrEqual(t, results.Platforms[p].Total.Spend, 500.0+1e-9, "platform %s", p)
	}
	li := results.Platforms[sim.PlatformLinkedIn]
	require.Len(t, li.Campaigns, 1)
	assert.Greater(t, len(li.Campaigns[0].Units), 1, "default campaign group plus Engineering leaders")
}

// TestExampleOverrides_Parse verifies that platform-overrides.yaml only
// touches the fields it names.
func TestExampleOverrides_Parse(t *testing.T) {
	bundle, err := sim.LoadPlatformBundle(filepath.Join("..", "examples", "platform-overrides.yaml"))
	require.NoError(t, err)

	fb := bundle[sim.PlatformFacebook].Apply(sim.NewPlatformModel(sim.PlatformFacebook).DefaultConfig())
	assert.Equal(t, 10, fb.AlgorithmWarmupDays)
	assert.Equal(t, sim.NewPlatformModel(sim.PlatformFacebook).DefaultConfig().CPMRange, fb.CPMRange)
}
