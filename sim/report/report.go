// Package report writes, reads and compares simulation results on disk.
//
// Export produces one self-describing JSON document per platform
// (<platform>_results.json) and one combined document
// (combined_results.json) in the output directory.
package report

import (
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/inference-sim/adsim/sim"
)

// Document kinds. Loaders reject documents of the wrong kind.
const (
	KindPlatform = "adsim.platform_results"
	KindCombined = "adsim.combined_results"

	// SchemaVersion is bumped on incompatible layout changes.
	SchemaVersion = 1

	CombinedFileName = "combined_results.json"
)

// Standard-library compatible config: floats are written in shortest
// round-trip form so re-imported totals are bit-identical.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Header is shared by every document.
type Header struct {
	Kind        string `json:"kind"`
	Version     int    `json:"version"`
	RunID       string `json:"run_id"`
	GeneratedAt string `json:"generated_at"`
	Days        int    `json:"days"`
	Seed        int64  `json:"seed"`
}

// PlatformReport is the export of one platform.
type PlatformReport struct {
	Header
	Platform     sim.Platform          `json:"platform"`
	DailyMetrics []sim.DailyMetrics    `json:"daily_metrics"`
	TotalMetrics sim.TotalMetrics      `json:"total_metrics"`
	Campaigns    []*sim.CampaignResult `json:"campaigns"`
	Summary      []CampaignSummary     `json:"summary"`
}

// CombinedReport is the cross-platform export.
type CombinedReport struct {
	Header
	Platforms map[sim.Platform]sim.TotalMetrics `json:"platforms"`
	Combined  sim.TotalMetrics                  `json:"combined"`
}

// FileName returns the export file name for a platform.
func FileName(p sim.Platform) string {
	return string(p) + "_results.json"
}

func newHeader(kind string, r *sim.Results, now time.Time) Header {
	return Header{
		Kind:        kind,
		Version:     SchemaVersion,
		RunID:       r.RunID,
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Days:        r.Days,
		Seed:        r.Seed,
	}
}

// NewPlatformReport builds the document for one platform of a run.
func NewPlatformReport(r *sim.Results, p sim.Platform, now time.Time) *PlatformReport {
	pr := r.Platforms[p]
	rep := &PlatformReport{
		Header:    newHeader(KindPlatform, r, now),
		Platform:  p,
		Campaigns: []*sim.CampaignResult{},
		Summary:   []CampaignSummary{},
	}
	if pr == nil {
		return rep
	}
	rep.DailyMetrics = pr.Daily
	rep.TotalMetrics = pr.Total
	rep.Campaigns = pr.Campaigns
	for _, cr := range pr.Campaigns {
		rep.Summary = append(rep.Summary, Summarize(cr))
	}
	return rep
}

// NewCombinedReport builds the cross-platform document of a run.
func NewCombinedReport(r *sim.Results, now time.Time) *CombinedReport {
	rep := &CombinedReport{
		Header:    newHeader(KindCombined, r, now),
		Platforms: make(map[sim.Platform]sim.TotalMetrics, len(r.Platforms)),
		Combined:  r.Combined,
	}
	for p, pr := range r.Platforms {
		rep.Platforms[p] = pr.Total
	}
	return rep
}
