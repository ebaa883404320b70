package sim

// CampaignResult is the run outcome of one campaign on its platform.
type CampaignResult struct {
	CampaignID string         `json:"campaign_id"`
	Name       string         `json:"name"`
	Platform   Platform       `json:"platform"`
	Objective  string         `json:"objective"`
	Daily      []DailyMetrics `json:"daily_metrics"`
	Total      TotalMetrics   `json:"total_metrics"`
	Units      []UnitResult   `json:"units,omitempty"`
	// ExhaustedDay is the first day the total budget ran out, -1 if never.
	ExhaustedDay int `json:"exhausted_day"`
}

func newCampaignResult(c *Campaign, units []StructuralUnit, days int) *CampaignResult {
	r := &CampaignResult{
		CampaignID:   c.ID,
		Name:         c.Name,
		Platform:     c.Platform,
		Objective:    c.NativeName,
		Daily:        make([]DailyMetrics, 0, days),
		Units:        make([]UnitResult, len(units)),
		ExhaustedDay: -1,
	}
	for i, u := range units {
		r.Units[i] = UnitResult{UnitID: u.ID, GroupID: u.GroupID}
		if u.Keyword != nil {
			r.Units[i].Keyword = u.Keyword.Text
		}
	}
	return r
}

// Accumulate appends one day and updates totals in O(units).
func (r *CampaignResult) Accumulate(s DaySample) {
	r.Daily = append(r.Daily, s.Metrics)
	r.Total.Add(s.Metrics)
	for i := range s.Units {
		r.Units[i].Total.Add(s.Units[i].DailyMetrics)
	}
}

// PlatformResult rolls up every campaign on one platform.
type PlatformResult struct {
	Platform  Platform          `json:"platform"`
	Daily     []DailyMetrics    `json:"daily_metrics"`
	Total     TotalMetrics      `json:"total_metrics"`
	Campaigns []*CampaignResult `json:"campaigns"`
}

// Results is the output of one RunCampaigns call.
type Results struct {
	RunID     string                       `json:"run_id"`
	Seed      int64                        `json:"seed"`
	Days      int                          `json:"days"`
	Platforms map[Platform]*PlatformResult `json:"platforms"`
	Combined  TotalMetrics                 `json:"combined"`
}

// PlatformNames returns the result's platforms in name order.
func (r *Results) PlatformNames() []Platform {
	ps := make([]Platform, 0, len(r.Platforms))
	for p := range r.Platforms {
		ps = append(ps, p)
	}
	return SortedPlatforms(ps)
}

// Campaign returns the result for a campaign id, or nil.
func (r *Results) Campaign(id string) *CampaignResult {
	for _, pr := range r.Platforms {
		for _, cr := range pr.Campaigns {
			if cr.CampaignID == id {
				return cr
			}
		}
	}
	return nil
}

// ResultAggregator folds per-pair campaign results into platform and
// combined totals. Not safe for concurrent use; the orchestrator calls it
// after workers finish.
type ResultAggregator struct {
	results *Results
}

// NewResultAggregator creates an aggregator with an empty entry for every platform.
func NewResultAggregator(runID string, seed int64, days int, platforms []Platform) *ResultAggregator {
	r := &Results{
		RunID:     runID,
		Seed:      seed,
		Days:      days,
		Platforms: make(map[Platform]*PlatformResult, len(platforms)),
	}
	for _, p := range platforms {
		daily := make([]DailyMetrics, days)
		for d := range daily {
			daily[d].Day = d
		}
		r.Platforms[p] = &PlatformResult{Platform: p, Daily: daily, Campaigns: []*CampaignResult{}}
	}
	return &ResultAggregator{results: r}
}

// Add folds one campaign result into its platform.
func (a *ResultAggregator) Add(cr *CampaignResult) {
	pr, ok := a.results.Platforms[cr.Platform]
	if !ok {
		pr = &PlatformResult{Platform: cr.Platform, Daily: make([]DailyMetrics, a.results.Days)}
		for d := range pr.Daily {
			pr.Daily[d].Day = d
		}
		a.results.Platforms[cr.Platform] = pr
	}
	pr.Campaigns = append(pr.Campaigns, cr)
	pr.Total.Merge(cr.Total)
	for _, d := range cr.Daily {
		pd := &pr.Daily[d.Day]
		pd.Impressions += d.Impressions
		pd.Clicks += d.Clicks
		pd.Conversions += d.Conversions
		pd.Spend += d.Spend
		pd.ConversionValue += d.ConversionValue
	}
}

// Finish computes the combined totals as the entry-wise sum of platform
// totals, in platform name order, and returns the results.
func (a *ResultAggregator) Finish() *Results {
	var combined TotalMetrics
	for _, p := range a.results.PlatformNames() {
		combined.Merge(a.results.Platforms[p].Total)
	}
	a.results.Combined = combined
	return a.results
}
