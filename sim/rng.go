package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible simulated day.
// Two runs with the same SimulationKey and identical configuration
// MUST produce identical patients, sample durations and statistics.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

const (
	// SubsystemWorkload is the RNG stream for patient generation.
	// Uses the master seed directly, so --seed alone pins the patient list.
	SubsystemWorkload = "workload"

	// SubsystemSampling is the RNG stream for sample durations.
	SubsystemSampling = "sampling"
)

// PartitionedRNG provides deterministic, isolated RNG streams per subsystem.
// Drawing more patients never shifts the sample durations, and vice versa.
//
// Derivation formula:
//   - SubsystemWorkload: masterSeed
//   - any other subsystem: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Use one PartitionedRNG per goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
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

	derivedSeed := int64(p.key)
	if name != SubsystemWorkload {
		derivedSeed ^= fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
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
