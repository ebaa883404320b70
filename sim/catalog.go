package sim

import (
	"fmt"
	"sync"
)

// CampaignCatalog owns the campaign structure of every platform:
// Campaign → GroupingUnit → {Creative, Keyword}. It enforces reference
// integrity and the draft-only mutation rule.
type CampaignCatalog struct {
	mu        sync.RWMutex
	labels    map[Platform]StructureLabels
	campaigns map[string]*Campaign
	groups    map[string]*GroupingUnit
	order     []string // campaign ids in creation order
	counters  map[Platform]int
}

// NewCampaignCatalog creates an empty catalog for platforms with the given labels.
func NewCampaignCatalog(labels map[Platform]StructureLabels) *CampaignCatalog {
	return &CampaignCatalog{
		labels:    labels,
		campaigns: make(map[string]*Campaign),
		groups:    make(map[string]*GroupingUnit),
		counters:  make(map[Platform]int),
	}
}

// CreateCampaign registers a draft campaign and returns its id.
// The audience reference is checked by the caller, which owns the registry.
func (c *CampaignCatalog) CreateCampaign(platform Platform, spec CampaignSpec, nativeObjective string) (string, error) {
	if _, ok := c.labels[platform]; !ok {
		return "", notFound("platform", string(platform))
	}
	if err := spec.Validate(); err != nil {
		return "", err
	}
	pacing := spec.Pacing
	if pacing == "" {
		pacing = PacingStandard
	}
	value := spec.ConversionValue
	if value == 0 {
		value = DefaultConversionValue
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[platform]++
	id := fmt.Sprintf("%s-%d", platform, c.counters[platform])
	c.campaigns[id] = &Campaign{
		ID:              id,
		Platform:        platform,
		Name:            spec.Name,
		Objective:       spec.Objective,
		NativeName:      nativeObjective,
		DailyBudget:     spec.DailyBudget,
		TotalBudget:     spec.TotalBudget,
		Targeting:       Targeting{Audience: spec.Targeting.Audience, Filters: spec.Targeting.Filters.clone()},
		Pacing:          pacing,
		ConversionValue: value,
		Seed:            spec.Seed,
		Status:          StatusDraft,
	}
	c.order = append(c.order, id)
	return id, nil
}

// CreateGroupingUnit adds a grouping unit to a draft campaign.
func (c *CampaignCatalog) CreateGroupingUnit(campaignID string, spec GroupingUnitSpec) (string, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	camp, err := c.draftCampaignLocked(campaignID)
	if err != nil {
		return "", err
	}
	if spec.Format != "" && !c.labels[camp.Platform].Keywords {
		return "", invalid("format", "platform %s does not serve search ad formats", camp.Platform)
	}
	return c.addGroupLocked(camp, spec), nil
}

func (c *CampaignCatalog) addGroupLocked(camp *Campaign, spec GroupingUnitSpec) string {
	labels := c.labels[camp.Platform]
	id := fmt.Sprintf("%s-%s-%d", camp.ID, labels.Group, len(camp.Groups)+1)
	name := spec.Name
	if name == "" {
		name = camp.Name + " default"
	}
	placements := append([]string(nil), spec.Placements...)
	if len(placements) == 0 {
		placements = append(placements, labels.DefaultPlacements...)
	}
	g := &GroupingUnit{
		ID:          id,
		CampaignID:  camp.ID,
		Name:        name,
		DailyBudget: spec.DailyBudget,
		Placements:  placements,
		Format:      spec.Format,
		Refinement:  spec.Refinement.clone(),
	}
	camp.Groups = append(camp.Groups, g)
	c.groups[id] = g
	return id
}

// AddKeyword adds a keyword to a grouping unit of a search campaign.
func (c *CampaignCatalog) AddKeyword(groupID string, spec KeywordSpec) (string, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	g, camp, err := c.draftGroupLocked(groupID)
	if err != nil {
		return "", err
	}
	if !c.labels[camp.Platform].Keywords {
		return "", invalid("keyword", "platform %s does not support keywords", camp.Platform)
	}
	id := fmt.Sprintf("%s-kw-%d", g.ID, len(g.Keywords)+1)
	g.Keywords = append(g.Keywords, Keyword{
		ID:           id,
		Text:         spec.Text,
		MatchType:    spec.MatchType,
		Bid:          spec.Bid,
		QualityScore: spec.QualityScore,
	})
	return id, nil
}

// CreateCreative attaches a creative to a grouping unit. parentID may also
// be a campaign id, in which case the creative goes to the campaign's first
// grouping unit (created on demand).
func (c *CampaignCatalog) CreateCreative(parentID string, spec CreativeSpec) (string, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var g *GroupingUnit
	var camp *Campaign
	if _, ok := c.campaigns[parentID]; ok {
		var err error
		if camp, err = c.draftCampaignLocked(parentID); err != nil {
			return "", err
		}
		if len(camp.Groups) == 0 {
			c.addGroupLocked(camp, GroupingUnitSpec{})
		}
		g = camp.Groups[0]
	} else {
		var err error
		if g, camp, err = c.draftGroupLocked(parentID); err != nil {
			return "", err
		}
	}
	labels := c.labels[camp.Platform]
	id := fmt.Sprintf("%s-%s-%d", g.ID, labels.Creative, len(g.Creatives)+1)
	g.Creatives = append(g.Creatives, Creative{
		ID:           id,
		Headline:     spec.Headline,
		Body:         spec.Body,
		ImageURL:     spec.ImageURL,
		VideoURL:     spec.VideoURL,
		Destination:  spec.Destination,
		CallToAction: spec.CallToAction,
		Quality:      spec.Quality,
	})
	return id, nil
}

// Campaign returns a copy of the campaign with the given id.
func (c *CampaignCatalog) Campaign(id string) (*Campaign, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	camp, ok := c.campaigns[id]
	if !ok {
		return nil, notFound("campaign", id)
	}
	return camp.clone(), nil
}

// Len returns the number of campaigns.
func (c *CampaignCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Seal moves every campaign to sealed and returns deep copies in creation
// order. Campaigns without grouping units fail the seal and nothing changes.
func (c *CampaignCatalog) Seal() ([]*Campaign, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range c.order {
		if len(c.campaigns[id].Groups) == 0 {
			return nil, &StateError{ID: id, Reason: "campaign has no grouping units"}
		}
	}
	out := make([]*Campaign, 0, len(c.order))
	for _, id := range c.order {
		camp := c.campaigns[id]
		camp.Status = StatusSealed
		out = append(out, camp.clone())
	}
	return out, nil
}

// Complete marks the given campaigns completed.
func (c *CampaignCatalog) Complete(ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		if camp, ok := c.campaigns[id]; ok {
			camp.Status = StatusCompleted
		}
	}
}

func (c *CampaignCatalog) draftCampaignLocked(id string) (*Campaign, error) {
	camp, ok := c.campaigns[id]
	if !ok {
		return nil, notFound("campaign", id)
	}
	if camp.Status != StatusDraft {
		return nil, &StateError{ID: id, Reason: fmt.Sprintf("campaign is %s; structure is frozen", camp.Status)}
	}
	return camp, nil
}

func (c *CampaignCatalog) draftGroupLocked(id string) (*GroupingUnit, *Campaign, error) {
	g, ok := c.groups[id]
	if !ok {
		return nil, nil, notFound("grouping unit", id)
	}
	camp, err := c.draftCampaignLocked(g.CampaignID)
	if err != nil {
		return nil, nil, err
	}
	return g, camp, nil
}
