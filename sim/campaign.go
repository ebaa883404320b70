package sim

import (
	"math"
	"strings"
)

// Objective is the platform-neutral campaign goal.
type Objective string

const (
	ObjectiveAwareness     Objective = "awareness"
	ObjectiveConsideration Objective = "consideration"
	ObjectiveConversions   Objective = "conversions"
)

// ValidObjectives is the set of recognized objectives.
var ValidObjectives = map[Objective]bool{
	ObjectiveAwareness:     true,
	ObjectiveConsideration: true,
	ObjectiveConversions:   true,
}

// CampaignStatus tracks a campaign's lifecycle: draft → sealed → completed.
// Only draft campaigns accept structural changes.
type CampaignStatus string

const (
	StatusDraft     CampaignStatus = "draft"
	StatusSealed    CampaignStatus = "sealed"
	StatusCompleted CampaignStatus = "completed"
)

// PacingMode selects how a campaign spreads its total budget.
type PacingMode string

const (
	// PacingStandard spends up to the daily budget as soon as demand allows.
	PacingStandard PacingMode = "standard"
	// PacingEven additionally caps each day at remaining total / days left.
	PacingEven PacingMode = "even"
)

// ValidPacingModes is the set of recognized pacing modes. Empty means standard.
var ValidPacingModes = map[PacingMode]bool{"": true, PacingStandard: true, PacingEven: true}

// MatchType is a search keyword's match type.
type MatchType string

const (
	MatchExact  MatchType = "exact"
	MatchPhrase MatchType = "phrase"
	MatchBroad  MatchType = "broad"
)

// AdFormat is the inventory a search grouping unit serves on.
type AdFormat string

const (
	FormatSearch   AdFormat = "search"
	FormatDisplay  AdFormat = "display"
	FormatVideo    AdFormat = "video"
	FormatShopping AdFormat = "shopping"
)

// ValidAdFormats is the set of recognized ad formats. Empty means search.
var ValidAdFormats = map[AdFormat]bool{"": true, FormatSearch: true, FormatDisplay: true, FormatVideo: true, FormatShopping: true}

// Keyword quality scores run from 1 to 10; 0 means not scored.
const (
	MinQualityScore = 1.0
	MaxQualityScore = 10.0
)

// DefaultConversionValue is the revenue credited per conversion when a
// campaign does not set one.
const DefaultConversionValue = 10.0

// TargetingFilters narrow a campaign's reachable audience.
// Zero values mean "no filter".
type TargetingFilters struct {
	AgeMin    int      `yaml:"age_min" json:"age_min,omitempty"`
	AgeMax    int      `yaml:"age_max" json:"age_max,omitempty"`
	Gender    string   `yaml:"gender" json:"gender,omitempty"`
	Locations []string `yaml:"locations" json:"locations,omitempty"`
	Interests []string `yaml:"interests" json:"interests,omitempty"`
	// Attributes holds professional dimensions (job_title, industry, seniority, ...).
	Attributes map[string][]string `yaml:"attributes" json:"attributes,omitempty"`
}

// NarrowingFactor is the share of the audience left after the filters, in (0,1].
func (f TargetingFilters) NarrowingFactor() float64 {
	factor := 1.0
	if f.AgeMin > 0 || f.AgeMax > 0 {
		lo, hi := f.AgeMin, f.AgeMax
		if lo <= 0 {
			lo = 18
		}
		if hi <= 0 {
			hi = 65
		}
		factor *= clamp(float64(hi-lo)/50, 0.02, 1)
	}
	if g := strings.ToLower(f.Gender); g != "" && g != "all" {
		factor *= 0.5
	}
	if n := len(f.Locations); n > 0 {
		factor *= math.Min(float64(n)/5, 1)
	}
	if n := len(f.Interests); n > 0 {
		factor *= math.Max(0.1, 1-0.1*float64(n))
	}
	return factor
}

func (f TargetingFilters) validate() error {
	if f.AgeMin < 0 || f.AgeMax < 0 {
		return invalid("targeting age", "must be >= 0")
	}
	if f.AgeMax > 0 && f.AgeMin > f.AgeMax {
		return invalid("targeting age", "age_min %d > age_max %d", f.AgeMin, f.AgeMax)
	}
	return nil
}

// Targeting binds a campaign to a named audience plus optional filters.
type Targeting struct {
	Audience string           `yaml:"audience" json:"audience"`
	Filters  TargetingFilters `yaml:",inline" json:"filters"`
}

// Keyword is a search keyword with its own bid.
type Keyword struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	MatchType MatchType `json:"match_type"`
	Bid       float64   `json:"bid"`

	// QualityScore in [1,10] switches the keyword to ad-rank pricing; 0 means unscored.
	QualityScore float64 `json:"quality_score,omitempty"`
}

// Creative is an ad payload.
type Creative struct {
	ID           string  `json:"id"`
	Headline     string  `json:"headline,omitempty"`
	Body         string  `json:"body,omitempty"`
	ImageURL     string  `json:"image_url,omitempty"`
	VideoURL     string  `json:"video_url,omitempty"`
	Destination  string  `json:"destination,omitempty"`
	CallToAction string  `json:"call_to_action,omitempty"`
	Quality      float64 `json:"quality,omitempty"`
}

// QualityScore is the explicit quality when set, otherwise the payload's
// completeness: headline, body, media, destination and call to action each
// contribute 0.2.
func (c Creative) QualityScore() float64 {
	if c.Quality > 0 {
		return clamp(c.Quality, 0, 1)
	}
	score := 0.0
	for _, present := range []bool{
		c.Headline != "",
		c.Body != "",
		c.ImageURL != "" || c.VideoURL != "",
		c.Destination != "",
		c.CallToAction != "",
	} {
		if present {
			score += 0.2
		}
	}
	return score
}

// GroupingUnit is an ad group, ad set or campaign group.
type GroupingUnit struct {
	ID         string
	CampaignID string
	Name       string
	// DailyBudget caps this unit's spend per day; 0 means no sub-cap.
	DailyBudget float64
	Placements  []string
	// Format applies to search platforms; empty means search.
	Format     AdFormat
	Refinement TargetingFilters
	Keywords   []Keyword
	Creatives  []Creative
}

// Campaign is the budget-bearing root of a platform's structure.
type Campaign struct {
	ID          string
	Platform    Platform
	Name        string
	Objective   Objective
	NativeName  string // objective in the platform's vocabulary
	DailyBudget float64
	// TotalBudget of 0 means no lifetime budget.
	TotalBudget     float64
	Targeting       Targeting
	Pacing          PacingMode
	ConversionValue float64
	Seed            int64
	Status          CampaignStatus
	Groups          []*GroupingUnit
}

// clone returns a deep copy safe to hand to a worker goroutine.
func (c *Campaign) clone() *Campaign {
	out := *c
	out.Targeting.Filters = c.Targeting.Filters.clone()
	out.Groups = make([]*GroupingUnit, len(c.Groups))
	for i, g := range c.Groups {
		gc := *g
		gc.Placements = append([]string(nil), g.Placements...)
		gc.Refinement = g.Refinement.clone()
		gc.Keywords = append([]Keyword(nil), g.Keywords...)
		gc.Creatives = append([]Creative(nil), g.Creatives...)
		out.Groups[i] = &gc
	}
	return &out
}

func (f TargetingFilters) clone() TargetingFilters {
	out := f
	out.Locations = append([]string(nil), f.Locations...)
	out.Interests = append([]string(nil), f.Interests...)
	if f.Attributes != nil {
		out.Attributes = make(map[string][]string, len(f.Attributes))
		for k, v := range f.Attributes {
			out.Attributes[k] = append([]string(nil), v...)
		}
	}
	return out
}

// CampaignSpec is the input to CreateCampaign.
type CampaignSpec struct {
	Name            string     `yaml:"name"`
	Objective       Objective  `yaml:"objective"`
	DailyBudget     float64    `yaml:"daily_budget"`
	TotalBudget     float64    `yaml:"total_budget"`
	Targeting       Targeting  `yaml:"targeting"`
	Pacing          PacingMode `yaml:"pacing"`
	ConversionValue float64    `yaml:"conversion_value"`
	Seed            int64      `yaml:"seed"`
}

// Validate checks budgets and enums.
func (s CampaignSpec) Validate() error {
	if s.Name == "" {
		return invalid("campaign name", "must not be empty")
	}
	if !ValidObjectives[s.Objective] {
		return invalid("objective", "unknown objective %q", s.Objective)
	}
	if math.IsNaN(s.DailyBudget) || s.DailyBudget <= 0 {
		return invalid("daily_budget", "must be > 0, got %v", s.DailyBudget)
	}
	if math.IsNaN(s.TotalBudget) || s.TotalBudget < 0 {
		return invalid("total_budget", "must be >= 0, got %v", s.TotalBudget)
	}
	if s.ConversionValue < 0 {
		return invalid("conversion_value", "must be >= 0, got %v", s.ConversionValue)
	}
	if !ValidPacingModes[s.Pacing] {
		return invalid("pacing", "unknown pacing mode %q", s.Pacing)
	}
	if s.Targeting.Audience == "" {
		return invalid("targeting audience", "must not be empty")
	}
	return s.Targeting.Filters.validate()
}

// GroupingUnitSpec is the input to CreateGroupingUnit.
type GroupingUnitSpec struct {
	Name        string           `yaml:"name"`
	DailyBudget float64          `yaml:"daily_budget"`
	Placements  []string         `yaml:"placements"`
	Format      AdFormat         `yaml:"format"`
	Refinement  TargetingFilters `yaml:"targeting"`
}

// Validate checks the sub-budget and format.
func (s GroupingUnitSpec) Validate() error {
	if math.IsNaN(s.DailyBudget) || s.DailyBudget < 0 {
		return invalid("grouping unit daily_budget", "must be >= 0, got %v", s.DailyBudget)
	}
	if !ValidAdFormats[s.Format] {
		return invalid("format", "unknown ad format %q", s.Format)
	}
	return s.Refinement.validate()
}

// KeywordSpec is the input to AddKeyword.
type KeywordSpec struct {
	Text         string    `yaml:"text"`
	MatchType    MatchType `yaml:"match_type"`
	Bid          float64   `yaml:"bid"`
	QualityScore float64   `yaml:"quality_score"`
}

// Validate checks the text, match type and bid.
func (s KeywordSpec) Validate() error {
	if strings.TrimSpace(s.Text) == "" {
		return invalid("keyword text", "must not be empty")
	}
	if _, ok := matchWeights[s.MatchType]; !ok {
		return invalid("match_type", "unknown match type %q", s.MatchType)
	}
	if math.IsNaN(s.Bid) || s.Bid <= 0 {
		return invalid("keyword bid", "must be > 0, got %v", s.Bid)
	}
	if s.QualityScore != 0 && !(s.QualityScore >= MinQualityScore && s.QualityScore <= MaxQualityScore) {
		return invalid("keyword quality_score", "must be 0 or in [1,10], got %v", s.QualityScore)
	}
	return nil
}

// CreativeSpec is the input to CreateCreative.
type CreativeSpec struct {
	Headline     string  `yaml:"headline"`
	Body         string  `yaml:"body"`
	ImageURL     string  `yaml:"image_url"`
	VideoURL     string  `yaml:"video_url"`
	Destination  string  `yaml:"destination"`
	CallToAction string  `yaml:"call_to_action"`
	Quality      float64 `yaml:"quality"`
}

// Validate checks the explicit quality.
func (s CreativeSpec) Validate() error {
	if math.IsNaN(s.Quality) || s.Quality < 0 || s.Quality > 1 {
		return invalid("creative quality", "must be in [0,1], got %v", s.Quality)
	}
	return nil
}

// CampaignDefinition is the input to CreateCrossPlatformCampaign. Empty
// Platforms means every registered platform.
type CampaignDefinition struct {
	CampaignSpec `yaml:",inline"`
	Platforms    []Platform     `yaml:"platforms"`
	Keywords     []KeywordSpec  `yaml:"keywords"`
	Creatives    []CreativeSpec `yaml:"creatives"`
}
