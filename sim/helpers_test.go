package sim

import "testing"

// techAudience is the reference audience used across engine tests.
var techAudience = AudienceProfile{
	Size:              800000,
	CTRBase:           0.03,
	ConversionRate:    0.015,
	DemographicsMatch: 0.8,
	InterestsMatch:    0.7,
	BehaviorsMatch:    0.6,
}

// newTestSimulator returns a simulator with techAudience defined as
// "tech_professionals" on every platform.
func newTestSimulator(t *testing.T, seed int64, workers int) *Simulator {
	t.Helper()
	s, err := NewSimulator(SimulatorConfig{Seed: seed, Workers: workers})
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	for _, p := range s.Platforms() {
		if err := s.DefineAudience(p, "tech_professionals", techAudience); err != nil {
			t.Fatalf("DefineAudience(%s): %v", p, err)
		}
	}
	return s
}

func productLaunch() CampaignDefinition {
	return CampaignDefinition{
		CampaignSpec: CampaignSpec{
			Name:        "Product Launch",
			Objective:   ObjectiveConversions,
			DailyBudget: 100,
			TotalBudget: 2000,
			Targeting:   Targeting{Audience: "tech_professionals"},
		},
		Keywords: []KeywordSpec{
			{Text: "project management software", MatchType: MatchExact, Bid: 2.0},
			{Text: "team collaboration", MatchType: MatchPhrase, Bid: 1.6},
		},
		Creatives: []CreativeSpec{
			{Headline: "Ship faster", Body: "Plan, track, deliver.", ImageURL: "hero.png", VideoURL: "demo.mp4", Destination: "https://example.com", CallToAction: "Start trial"},
		},
	}
}

// checkDailyInvariants asserts the per-day invariants of one campaign result.
func checkDailyInvariants(t *testing.T, c *Campaign, r *CampaignResult) {
	t.Helper()
	cumulative := 0.0
	for _, d := range r.Daily {
		if d.Clicks > d.Impressions {
			t.Errorf("%s day %d: clicks %d > impressions %d", c.ID, d.Day, d.Clicks, d.Impressions)
		}
		if d.Conversions > d.Clicks {
			t.Errorf("%s day %d: conversions %d > clicks %d", c.ID, d.Day, d.Conversions, d.Clicks)
		}
		if d.Impressions < 0 || d.Clicks < 0 || d.Conversions < 0 || d.Spend < 0 {
			t.Errorf("%s day %d: negative metric %+v", c.ID, d.Day, d)
		}
		if d.Spend > c.DailyBudget+1e-9 {
			t.Errorf("%s day %d: spend %f > daily budget %f", c.ID, d.Day, d.Spend, c.DailyBudget)
		}
		cumulative += d.Spend
	}
	if c.TotalBudget > 0 && cumulative > c.TotalBudget+1e-6 {
		t.Errorf("%s: cumulative spend %f > total budget %f", c.ID, cumulative, c.TotalBudget)
	}
}
