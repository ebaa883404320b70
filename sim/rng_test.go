package sim

import (
	"math"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// BDD: Same key+name produces same sequence
	rng1 := NewPartitionedRNG(NewSimulationKey(42), 0)
	rng2 := NewPartitionedRNG(NewSimulationKey(42), 0)
	stream := SubsystemCampaignDay("google-1", 3)

	for i := 0; i < 3; i++ {
		v1 := rng1.ForSubsystem(stream).Float64()
		v2 := rng2.ForSubsystem(stream).Float64()
		if v1 != v2 {
			t.Errorf("Value %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// BDD: Drawing from day 0 doesn't affect day 1
	rngA := NewPartitionedRNG(NewSimulationKey(42), 0)
	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemCampaignDay("google-1", 0)).Float64()
	}
	aDay1First := rngA.ForSubsystem(SubsystemCampaignDay("google-1", 1)).Float64()

	fresh := NewPartitionedRNG(NewSimulationKey(42), 0)
	expectedFirst := fresh.ForSubsystem(SubsystemCampaignDay("google-1", 1)).Float64()

	if aDay1First != expectedFirst {
		t.Errorf("day 1 first value = %v, want %v (isolation broken)", aDay1First, expectedFirst)
	}
}

func TestPartitionedRNG_CampaignsIndependent(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42), 0)
	a := rng.ForSubsystem(SubsystemCampaignDay("google-1", 0)).Float64()
	b := rng.ForSubsystem(SubsystemCampaignDay("google-2", 0)).Float64()
	if a == b {
		t.Error("different campaigns drew the same first value")
	}
}

func TestPartitionedRNG_SaltChangesStream(t *testing.T) {
	stream := SubsystemCampaignDay("tiktok-1", 0)
	plain := NewPartitionedRNG(NewSimulationKey(42), 0).ForSubsystem(stream).Float64()
	salted := NewPartitionedRNG(NewSimulationKey(42), 7).ForSubsystem(stream).Float64()
	if plain == salted {
		t.Error("campaign seed did not change the stream")
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	// BDD: Same name returns same *rand.Rand instance
	rng := NewPartitionedRNG(NewSimulationKey(42), 0)

	rng1 := rng.ForSubsystem("x")
	rng2 := rng.ForSubsystem("x")

	if rng1 != rng2 {
		t.Error("ForSubsystem returned different instances for same name")
	}
}

func TestPartitionedRNG_Release_RestartsStream(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42), 0)
	first := rng.ForSubsystem("x").Float64()
	rng.Release("x")
	if len(rng.subsystems) != 0 {
		t.Errorf("Release left %d subsystems cached", len(rng.subsystems))
	}
	if again := rng.ForSubsystem("x").Float64(); again != first {
		t.Errorf("released stream restarted at %v, want %v", again, first)
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewSimulationKey(seed), 0)

	if rng.Key() != SimulationKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestPartitionedRNG_NegativeSeed(t *testing.T) {
	// BDD: MinInt64 seed works correctly
	rng := NewPartitionedRNG(NewSimulationKey(math.MinInt64), math.MaxInt64)
	val := rng.ForSubsystem("x").Float64()
	if val < 0 || val >= 1 {
		t.Errorf("Float64() returned %v, want [0, 1)", val)
	}
}

func TestPartitionedRNG_LazyInitialization(t *testing.T) {
	// BDD: Subsystems map is empty until ForSubsystem is called
	rng := NewPartitionedRNG(NewSimulationKey(42), 0)

	if len(rng.subsystems) != 0 {
		t.Errorf("New PartitionedRNG has %d subsystems, want 0", len(rng.subsystems))
	}
}
