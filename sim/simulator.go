package sim

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/adsim/sim/trace"
)

// SimulatorConfig configures a Simulator.
type SimulatorConfig struct {
	Seed int64
	// Workers bounds the number of (campaign, platform) pairs evaluated at
	// once. 0 means GOMAXPROCS.
	Workers int
	// Platforms to register. Empty means every valid platform.
	Platforms []Platform
	Trace     trace.TraceConfig
}

// Simulator is the orchestrator: it owns the audience registry, the campaign
// catalog and the platform models, and runs the day loop.
type Simulator struct {
	key     SimulationKey
	workers int
	traceCf trace.TraceConfig

	audiences *AudienceRegistry
	catalog   *CampaignCatalog
	platforms []Platform

	mu      sync.RWMutex // guards configs
	models  map[Platform]PlatformModel
	configs map[Platform]PlatformConfig

	lastTrace *trace.SimulationTrace
}

// NewSimulator creates a Simulator with default platform configurations.
// Platform models must be registered (import sim/platforms).
func NewSimulator(cfg SimulatorConfig) (*Simulator, error) {
	if cfg.Workers < 0 {
		return nil, invalid("workers", "must be >= 0, got %d", cfg.Workers)
	}
	if !trace.IsValidTraceLevel(string(cfg.Trace.Level)) {
		return nil, invalid("trace level", "unknown level %q", cfg.Trace.Level)
	}
	platforms := cfg.Platforms
	if len(platforms) == 0 {
		for p := range ValidPlatforms {
			platforms = append(platforms, p)
		}
	}
	platforms = SortedPlatforms(platforms)
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	s := &Simulator{
		key:       NewSimulationKey(cfg.Seed),
		workers:   workers,
		traceCf:   cfg.Trace,
		audiences: NewAudienceRegistry(),
		platforms: platforms,
		models:    make(map[Platform]PlatformModel, len(platforms)),
		configs:   make(map[Platform]PlatformConfig, len(platforms)),
	}
	labels := make(map[Platform]StructureLabels, len(platforms))
	for _, p := range platforms {
		if !ValidPlatforms[p] {
			return nil, notFound("platform", string(p))
		}
		model := NewPlatformModel(p)
		s.models[p] = model
		s.configs[p] = model.DefaultConfig()
		labels[p] = model.Labels()
	}
	s.catalog = NewCampaignCatalog(labels)
	return s, nil
}

// Platforms returns the registered platforms in name order.
func (s *Simulator) Platforms() []Platform {
	return append([]Platform(nil), s.platforms...)
}

// Catalog exposes the campaign catalog for read access.
func (s *Simulator) Catalog() *CampaignCatalog { return s.catalog }

// LastTrace returns the decision trace of the most recent run, nil when
// tracing is off.
func (s *Simulator) LastTrace() *trace.SimulationTrace { return s.lastTrace }

// DefineAudience stores a named audience profile for a platform.
func (s *Simulator) DefineAudience(platform Platform, name string, profile AudienceProfile) error {
	if _, ok := s.models[platform]; !ok {
		return notFound("platform", string(platform))
	}
	return s.audiences.Define(platform, name, profile)
}

// PlatformConfig returns the current configuration of a platform.
func (s *Simulator) PlatformConfig(p Platform) (PlatformConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[p]
	if !ok {
		return PlatformConfig{}, notFound("platform", string(p))
	}
	return cfg, nil
}

// ConfigurePlatforms merges overrides onto the current platform configs.
// Either every override applies or none does.
func (s *Simulator) ConfigurePlatforms(overrides map[Platform]PlatformOverrides) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := make(map[Platform]PlatformConfig, len(overrides))
	for p, o := range overrides {
		cur, ok := s.configs[p]
		if !ok {
			return notFound("platform", string(p))
		}
		next := o.Apply(cur)
		if err := next.Validate(); err != nil {
			return fmt.Errorf("platform %s: %w", p, err)
		}
		merged[p] = next
	}
	for p, cfg := range merged {
		logrus.Debugf("platform %s reconfigured: %+v", p, cfg)
		s.configs[p] = cfg
	}
	return nil
}

// CreateCampaign creates a draft campaign on one platform.
func (s *Simulator) CreateCampaign(platform Platform, spec CampaignSpec) (string, error) {
	model, ok := s.models[platform]
	if !ok {
		return "", notFound("platform", string(platform))
	}
	if err := spec.Validate(); err != nil {
		return "", err
	}
	if _, err := s.audiences.Lookup(platform, spec.Targeting.Audience); err != nil {
		return "", err
	}
	return s.catalog.CreateCampaign(platform, spec, model.ObjectiveName(spec.Objective))
}

// CreateCrossPlatformCampaign creates one campaign per platform, each with a
// default grouping unit carrying the definition's keywords (search only) and
// creatives. Validation happens up front so a failure creates nothing.
func (s *Simulator) CreateCrossPlatformCampaign(def CampaignDefinition) (map[Platform]string, error) {
	platforms := def.Platforms
	if len(platforms) == 0 {
		platforms = s.platforms
	}
	platforms = SortedPlatforms(platforms)
	if err := def.CampaignSpec.Validate(); err != nil {
		return nil, err
	}
	for _, p := range platforms {
		if _, ok := s.models[p]; !ok {
			return nil, notFound("platform", string(p))
		}
		if _, err := s.audiences.Lookup(p, def.Targeting.Audience); err != nil {
			return nil, err
		}
	}
	for _, k := range def.Keywords {
		if err := k.Validate(); err != nil {
			return nil, err
		}
	}
	for _, c := range def.Creatives {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}

	ids := make(map[Platform]string, len(platforms))
	for _, p := range platforms {
		id, err := s.CreateCampaign(p, def.CampaignSpec)
		if err != nil {
			return nil, err
		}
		groupID, err := s.catalog.CreateGroupingUnit(id, GroupingUnitSpec{})
		if err != nil {
			return nil, err
		}
		if s.models[p].Labels().Keywords {
			for _, k := range def.Keywords {
				if _, err := s.catalog.AddKeyword(groupID, k); err != nil {
					return nil, err
				}
			}
		}
		for _, c := range def.Creatives {
			if _, err := s.catalog.CreateCreative(groupID, c); err != nil {
				return nil, err
			}
		}
		ids[p] = id
	}
	return ids, nil
}

// CreateGroupingUnit adds an ad group / ad set / campaign group to a draft campaign.
func (s *Simulator) CreateGroupingUnit(campaignID string, spec GroupingUnitSpec) (string, error) {
	return s.catalog.CreateGroupingUnit(campaignID, spec)
}

// AddKeyword adds a keyword to a search grouping unit.
func (s *Simulator) AddKeyword(groupID string, spec KeywordSpec) (string, error) {
	return s.catalog.AddKeyword(groupID, spec)
}

// CreateCreative adds a creative to a grouping unit, or to a campaign's first
// grouping unit when parentID is a campaign id.
func (s *Simulator) CreateCreative(parentID string, spec CreativeSpec) (string, error) {
	return s.catalog.CreateCreative(parentID, spec)
}

// pairJob is one (campaign, platform) evaluation.
type pairJob struct {
	campaign *Campaign
	model    PlatformModel
	config   PlatformConfig
	audience AudienceProfile
}

// RunCampaigns seals every campaign and simulates days days. Each
// (campaign, platform) pair runs on its own worker with its own pacing
// state and random stream; days within a pair are sequential.
func (s *Simulator) RunCampaigns(days int) (*Results, error) {
	if days < 0 {
		return nil, invalid("days", "must be >= 0, got %d", days)
	}
	campaigns, err := s.catalog.Seal()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	jobs := make([]pairJob, len(campaigns))
	for i, c := range campaigns {
		aud, err := s.audiences.Lookup(c.Platform, c.Targeting.Audience)
		if err != nil {
			s.mu.RUnlock()
			return nil, &StateError{ID: c.ID, Reason: err.Error()}
		}
		jobs[i] = pairJob{campaign: c, model: s.models[c.Platform], config: s.configs[c.Platform], audience: aud}
	}
	s.mu.RUnlock()

	runID := uuid.NewString()
	logrus.Infof("run %s: %d campaigns over %d days (seed %d, %d workers)", runID, len(jobs), days, s.key, s.workers)

	results := make([]*CampaignResult, len(jobs))
	traces := make([]*trace.SimulationTrace, len(jobs))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range jobs {
		i := i
		g.Go(func() error {
			results[i], traces[i] = s.runPair(jobs[i], days)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg := NewResultAggregator(runID, int64(s.key), days, s.platforms)
	ids := make([]string, len(results))
	for i, r := range results {
		agg.Add(r)
		ids[i] = r.CampaignID
	}
	s.catalog.Complete(ids)
	s.lastTrace = mergeTraces(s.traceCf, traces)

	out := agg.Finish()
	logrus.Infof("run %s: spend %.2f, impressions %d, clicks %d, conversions %d",
		runID, out.Combined.Spend, out.Combined.Impressions, out.Combined.Clicks, out.Combined.Conversions)
	return out, nil
}

// runPair evaluates one campaign over the horizon.
func (s *Simulator) runPair(job pairJob, days int) (*CampaignResult, *trace.SimulationTrace) {
	c := job.campaign
	units := job.model.Units(c, job.config)
	result := newCampaignResult(c, units, days)
	pacer := NewPacingState(c, days)
	rng := NewPartitionedRNG(s.key, c.Seed)
	var tr *trace.SimulationTrace
	if s.traceCf.Traces(c.ID) {
		tr = trace.NewSimulationTrace(s.traceCf)
	}

	var engine MetricsEngine
	for day := 0; day < days; day++ {
		stream := SubsystemCampaignDay(c.ID, day)
		sample := engine.Sample(DayInput{
			Day:      day,
			Campaign: c,
			Audience: job.audience,
			Config:   job.config,
			Model:    job.model,
			Units:    units,
			Pacer:    pacer,
			RNG:      rng.ForSubsystem(stream),
		})
		rng.Release(stream)
		result.Accumulate(sample)
		if tr != nil {
			tr.RecordPacing(pacingRecord(c, sample, pacer))
		}
		if pacer.ExhaustedDay == day {
			logrus.Debugf("campaign %s exhausted its total budget on day %d", c.ID, day)
		}
	}
	result.ExhaustedDay = pacer.ExhaustedDay
	logrus.Debugf("campaign %s done: spend %.2f of %.2f", c.ID, result.Total.Spend, c.TotalBudget)
	return result, tr
}

func pacingRecord(c *Campaign, s DaySample, p *PacingState) trace.PacingRecord {
	remaining := -1.0
	if p.TotalBudget > 0 {
		remaining = p.RemainingTotal
	}
	return trace.PacingRecord{
		CampaignID:     c.ID,
		Platform:       string(c.Platform),
		Day:            s.Decision.Day,
		Demand:         s.Decision.Demand,
		Ceiling:        s.Decision.Ceiling,
		Spend:          s.Metrics.Spend,
		RemainingTotal: remaining,
		Exhausted:      p.Exhausted(),
	}
}

func mergeTraces(cfg trace.TraceConfig, traces []*trace.SimulationTrace) *trace.SimulationTrace {
	if cfg.Level != trace.TraceLevelPacing {
		return nil
	}
	merged := trace.NewSimulationTrace(cfg)
	for _, t := range traces {
		if t != nil {
			merged.Pacing = append(merged.Pacing, t.Pacing...)
		}
	}
	return merged
}
