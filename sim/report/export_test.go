package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/adsim/sim"
	_ "github.com/inference-sim/adsim/sim/platforms"
)

func runFixture(t *testing.T, days int) *sim.Results {
	t.Helper()
	s, err := sim.NewSimulator(sim.SimulatorConfig{Seed: 42, Workers: 2})
	require.NoError(t, err)
	profile := sim.AudienceProfile{
		Size: 500000, CTRBase: 0.025, ConversionRate: 0.02,
		DemographicsMatch: 0.8, InterestsMatch: 0.7, BehaviorsMatch: 0.6,
	}
	for _, p := range s.Platforms() {
		require.NoError(t, s.DefineAudience(p, "smb_owners", profile))
	}
	_, err = s.CreateCrossPlatformCampaign(sim.CampaignDefinition{
		CampaignSpec: sim.CampaignSpec{
			Name: "Spring Sale", Objective: sim.ObjectiveConversions,
			DailyBudget: 80, TotalBudget: 1000, ConversionValue: 37.5,
			Targeting: sim.Targeting{Audience: "smb_owners"},
		},
		Keywords:  []sim.KeywordSpec{{Text: "accounting software", MatchType: sim.MatchPhrase, Bid: 1.9}},
		Creatives: []sim.CreativeSpec{{Headline: "Save 30%", Body: "Books in minutes", ImageURL: "a.png", Destination: "https://example.com"}},
	})
	require.NoError(t, err)
	res, err := s.RunCampaigns(days)
	require.NoError(t, err)
	return res
}

// Scenario D: export then re-import reproduces identical totals.
func TestExport_RoundTrip_TotalsIdentical(t *testing.T) {
	res := runFixture(t, 20)
	dir := filepath.Join(t.TempDir(), "out", "nested")

	paths, err := Export(res, dir)
	require.NoError(t, err)
	assert.Len(t, paths, len(res.Platforms)+1)

	for _, p := range res.PlatformNames() {
		rep, err := LoadPlatformReport(filepath.Join(dir, FileName(p)))
		require.NoError(t, err, p)
		assert.Equal(t, KindPlatform, rep.Kind)
		assert.Equal(t, res.RunID, rep.RunID)
		assert.Equal(t, p, rep.Platform)
		assert.Equal(t, res.Platforms[p].Total, rep.TotalMetrics, "%s totals", p)
		assert.Equal(t, res.Platforms[p].Daily, rep.DailyMetrics, "%s daily", p)
		require.Len(t, rep.Campaigns, len(res.Platforms[p].Campaigns))
		for i, cr := range rep.Campaigns {
			assert.Equal(t, res.Platforms[p].Campaigns[i].Total, cr.Total)
			assert.Equal(t, res.Platforms[p].Campaigns[i].Daily, cr.Daily)
		}
	}

	combined, err := LoadCombinedReport(filepath.Join(dir, CombinedFileName))
	require.NoError(t, err)
	assert.Equal(t, res.Combined, combined.Combined)
	for p, pr := range res.Platforms {
		assert.Equal(t, pr.Total, combined.Platforms[p])
	}
}

func TestExport_ZeroDayRun_WellFormed(t *testing.T) {
	res := runFixture(t, 0)
	dir := t.TempDir()
	_, err := Export(res, dir)
	require.NoError(t, err)

	rep, err := LoadPlatformReport(filepath.Join(dir, FileName(sim.PlatformGoogle)))
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Days)
	require.Len(t, rep.Campaigns, 1)
	assert.Empty(t, rep.Campaigns[0].Daily)
	assert.Equal(t, sim.TotalMetrics{}, rep.TotalMetrics)
}

func TestExport_DirectoryIsAFile_IOError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "results")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Export(runFixture(t, 1), blocker)
	var ioErr *sim.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "mkdir", ioErr.Op)
	assert.ErrorIs(t, err, sim.ErrIO)
}

func TestExport_NilResults(t *testing.T) {
	_, err := Export(nil, t.TempDir())
	assert.ErrorIs(t, err, sim.ErrValidation)
}

func TestLoad_MissingFile_IOError(t *testing.T) {
	_, err := LoadCombinedReport(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, sim.ErrIO)
}

func TestLoad_WrongKind_ValidationError(t *testing.T) {
	res := runFixture(t, 2)
	dir := t.TempDir()
	_, err := Export(res, dir)
	require.NoError(t, err)

	_, err = LoadCombinedReport(filepath.Join(dir, FileName(sim.PlatformTikTok)))
	assert.ErrorIs(t, err, sim.ErrValidation)
	_, err = LoadPlatformReport(filepath.Join(dir, CombinedFileName))
	assert.ErrorIs(t, err, sim.ErrValidation)
}

func TestLoad_Garbage_ValidationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined_results.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := LoadCombinedReport(path)
	assert.ErrorIs(t, err, sim.ErrValidation)
}

func TestNewCombinedReport_Header(t *testing.T) {
	res := runFixture(t, 3)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rep := NewCombinedReport(res, now)
	assert.Equal(t, "2026-03-01T12:00:00Z", rep.GeneratedAt)
	assert.Equal(t, SchemaVersion, rep.Version)
	assert.Equal(t, int64(42), rep.Seed)
	assert.Equal(t, 3, rep.Days)
	assert.Len(t, rep.Platforms, 4)
}
