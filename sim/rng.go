package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey and identical definitions MUST
// produce identical DailyMetrics, regardless of worker count.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// SubsystemCampaignDay returns the subsystem name for one campaign-day.
// Every draw made while sampling that day comes from this stream, so days
// can be replayed independently.
func SubsystemCampaignDay(campaignID string, day int) string {
	return fmt.Sprintf("%s/day_%d", campaignID, day)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: masterSeed XOR campaignSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Each (campaign, platform) worker owns its
// own PartitionedRNG.
type PartitionedRNG struct {
	key        SimulationKey
	salt       int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey and an
// optional per-campaign salt (0 when the campaign carries no explicit seed).
func NewPartitionedRNG(key SimulationKey, salt int64) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		salt:       salt,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	derivedSeed := int64(p.key) ^ p.salt ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Release drops the cached RNG for a subsystem that will not be used again.
func (p *PartitionedRNG) Release(name string) {
	delete(p.subsystems, name)
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
