package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const launchScenario = `
seed: 42
days: 7
platforms: [google, facebook, linkedin, tiktok]
platform_config:
  google:
    cpc_range: {min: 0.6, max: 2.5}
audiences:
  tech_professionals:
    size: 800000
    ctr_base: 0.03
    conversion_rate: 0.015
    demographics_match: 0.8
campaigns:
  - name: Product Launch
    objective: conversions
    daily_budget: 100
    total_budget: 500
    targeting:
      audience: tech_professionals
      age_min: 25
      age_max: 45
    keywords:
      - {text: project management software, match_type: exact, bid: 2.5}
      - {text: team collaboration, match_type: phrase, bid: 1.8}
    creatives:
      - headline: Ship faster
        body: Plan, track and deliver
        image_url: https://example.com/a.png
        video_url: https://example.com/a.mp4
        destination: https://example.com
        call_to_action: Sign up
    groups:
      - platform: facebook
        name: Retargeting
        daily_budget: 30
        placements: [instagram_feed, stories]
        creatives:
          - headline: Come back
`

// writeScenario writes content to a scenario file in a fresh temp dir.
func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
