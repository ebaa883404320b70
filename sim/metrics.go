package sim

// DailyMetrics is the realized performance of one campaign (or one unit) on
// one day. Produced once, never mutated.
type DailyMetrics struct {
	Day             int     `json:"day"`
	Impressions     int64   `json:"impressions"`
	Clicks          int64   `json:"clicks"`
	Conversions     int64   `json:"conversions"`
	Spend           float64 `json:"spend"`
	ConversionValue float64 `json:"conversion_value"`
}

// TotalMetrics accumulates DailyMetrics. Derived ratios are recomputed on
// every Add or Merge; each is 0 when its denominator is 0.
type TotalMetrics struct {
	Impressions     int64   `json:"impressions"`
	Clicks          int64   `json:"clicks"`
	Conversions     int64   `json:"conversions"`
	Spend           float64 `json:"spend"`
	ConversionValue float64 `json:"conversion_value"`

	CTR  float64 `json:"ctr"`
	CPC  float64 `json:"cpc"`
	CPM  float64 `json:"cpm"`
	CPA  float64 `json:"cpa"`
	ROAS float64 `json:"roas"`
	// Efficiency is conversions per currency unit spent.
	Efficiency float64 `json:"efficiency"`
}

// Add folds one day into the totals.
func (t *TotalMetrics) Add(d DailyMetrics) {
	t.Impressions += d.Impressions
	t.Clicks += d.Clicks
	t.Conversions += d.Conversions
	t.Spend += d.Spend
	t.ConversionValue += d.ConversionValue
	t.derive()
}

// Merge folds another total into this one, entry-wise.
func (t *TotalMetrics) Merge(o TotalMetrics) {
	t.Impressions += o.Impressions
	t.Clicks += o.Clicks
	t.Conversions += o.Conversions
	t.Spend += o.Spend
	t.ConversionValue += o.ConversionValue
	t.derive()
}

func (t *TotalMetrics) derive() {
	t.CTR = safeDiv(float64(t.Clicks), float64(t.Impressions))
	t.CPC = safeDiv(t.Spend, float64(t.Clicks))
	t.CPM = safeDiv(t.Spend*1000, float64(t.Impressions))
	t.CPA = safeDiv(t.Spend, float64(t.Conversions))
	t.ROAS = safeDiv(t.ConversionValue, t.Spend)
	t.Efficiency = safeDiv(float64(t.Conversions), t.Spend)
}

// UnitMetrics is one structural unit's share of a day.
type UnitMetrics struct {
	UnitID  string
	GroupID string
	DailyMetrics
}

// UnitResult is the run total of one structural unit.
type UnitResult struct {
	UnitID  string       `json:"unit_id"`
	GroupID string       `json:"group_id"`
	Keyword string       `json:"keyword,omitempty"`
	Total   TotalMetrics `json:"total"`
}
