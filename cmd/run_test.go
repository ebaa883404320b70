package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/adsim/sim"
)

func TestRunScenario_ExportsAndPrints(t *testing.T) {
	// GIVEN the launch scenario and an output directory
	out := filepath.Join(t.TempDir(), "results")
	opts := runOptions{ScenarioPath: writeScenario(t, launchScenario), OutputDir: out, Workers: 2, TraceLevel: "pacing"}
	var buf bytes.Buffer

	// WHEN the scenario runs
	results, files, err := runScenario(opts, &buf)

	// THEN one file per platform plus the combined file are written
	require.NoError(t, err)
	assert.Len(t, files, 5)
	for _, f := range files {
		_, statErr := os.Stat(f)
		assert.NoError(t, statErr, f)
	}
	assert.Equal(t, 7, results.Days)
	assert.LessOrEqual(t, results.Platforms[sim.PlatformGoogle].Total.Spend, 500.0+1e-9)

	// AND the summary is printed with the combined row and the trace section
	output := buf.String()
	assert.Contains(t, output, "Simulation Results")
	assert.Contains(t, output, "combined")
	assert.Contains(t, output, "Pacing Trace")
	assert.Contains(t, output, "Results written to")
}

func TestRunScenario_FlagOverrides(t *testing.T) {
	opts := runOptions{
		ScenarioPath: writeScenario(t, launchScenario),
		NoExport:     true,
		Days:         3, OverrideDays: true,
		Seed: 7, OverrideSeed: true,
	}

	results, files, err := runScenario(opts, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Nil(t, files)
	assert.Equal(t, 3, results.Days)
	assert.Equal(t, int64(7), results.Seed)
}

func TestRunScenario_Deterministic(t *testing.T) {
	path := writeScenario(t, launchScenario)
	a, _, err := runScenario(runOptions{ScenarioPath: path, NoExport: true, Workers: 1}, &bytes.Buffer{})
	require.NoError(t, err)
	b, _, err := runScenario(runOptions{ScenarioPath: path, NoExport: true, Workers: 8}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, a.Combined, b.Combined)
}

func TestRunScenario_PlatformConfigFile(t *testing.T) {
	// GIVEN an override file that zeroes tiktok's reach
	cfgPath := filepath.Join(t.TempDir(), "platforms.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("tiktok:\n  daily_reach_rate: 0\n"), 0o644))
	opts := runOptions{ScenarioPath: writeScenario(t, launchScenario), PlatformConfigPath: cfgPath, NoExport: true}

	// WHEN the scenario runs
	results, _, err := runScenario(opts, &bytes.Buffer{})

	// THEN tiktok serves nothing
	require.NoError(t, err)
	assert.Equal(t, int64(0), results.Platforms[sim.PlatformTikTok].Total.Impressions)
	assert.Equal(t, 0.0, results.Platforms[sim.PlatformTikTok].Total.Spend)
}

func TestRunScenario_Errors(t *testing.T) {
	_, _, err := runScenario(runOptions{ScenarioPath: writeScenario(t, launchScenario), TraceLevel: "verbose"}, &bytes.Buffer{})
	assert.True(t, errors.Is(err, sim.ErrValidation), "bad trace level: %v", err)

	_, _, err = runScenario(runOptions{ScenarioPath: filepath.Join(t.TempDir(), "missing.yaml")}, &bytes.Buffer{})
	assert.True(t, errors.Is(err, sim.ErrIO), "missing scenario: %v", err)
}

func TestCompareDirs_RanksRuns(t *testing.T) {
	// GIVEN two exported runs with different seeds
	path := writeScenario(t, launchScenario)
	dirA := filepath.Join(t.TempDir(), "a")
	dirB := filepath.Join(t.TempDir(), "b")
	_, _, err := runScenario(runOptions{ScenarioPath: path, OutputDir: dirA}, &bytes.Buffer{})
	require.NoError(t, err)
	_, _, err = runScenario(runOptions{ScenarioPath: path, OutputDir: dirB, Seed: 99, OverrideSeed: true}, &bytes.Buffer{})
	require.NoError(t, err)

	// WHEN they are compared on CPA
	var buf bytes.Buffer
	err = compareDirs([]string{dirA, dirB}, "cpa", &buf)

	// THEN both appear ranked
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Comparison on cpa")
	assert.Contains(t, buf.String(), "#1")
	assert.Contains(t, buf.String(), "#2")

	assert.Error(t, compareDirs([]string{dirA, dirB}, "likes", &buf))
	assert.True(t, errors.Is(compareDirs([]string{dirA, t.TempDir()}, "cpa", &buf), sim.ErrIO))
}

func TestWriteDefaults_RoundTrips(t *testing.T) {
	// GIVEN the defaults printed as YAML
	var buf bytes.Buffer
	require.NoError(t, writeDefaults(&buf))

	// WHEN the output is parsed as a platform-config file
	bundle, err := sim.ParsePlatformBundle(buf.Bytes())

	// THEN applying it to any platform's defaults is a no-op
	require.NoError(t, err)
	require.Len(t, bundle, len(sim.ValidPlatforms))
	for p := range sim.ValidPlatforms {
		def := sim.NewPlatformModel(p).DefaultConfig()
		assert.Equal(t, def, bundle[p].Apply(sim.PlatformConfig{}), "platform %s", p)
	}
}

func TestPrintSummary_GroupsDigits(t *testing.T) {
	r := &sim.Results{
		Days: 1,
		Platforms: map[sim.Platform]*sim.PlatformResult{
			sim.PlatformGoogle: {Platform: sim.PlatformGoogle, Total: sim.TotalMetrics{Impressions: 1234567}},
		},
		Combined: sim.TotalMetrics{Impressions: 1234567},
	}
	var buf bytes.Buffer

	printSummary(&buf, r)

	assert.Contains(t, buf.String(), "1,234,567")
}


func TestRunScenario_TraceCampaignFilter(t *testing.T) {
	// GIVEN a pacing trace limited to the tiktok campaign
	opts := runOptions{
		ScenarioPath:   writeScenario(t, launchScenario),
		NoExport:       true,
		TraceLevel:     "pacing",
		TraceCampaigns: []string{"tiktok-1"},
	}
	var buf bytes.Buffer

	// WHEN the scenario runs
	_, _, err := runScenario(opts, &buf)

	// THEN the trace summary counts one decision per day for that campaign
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "decisions 7,")
}
