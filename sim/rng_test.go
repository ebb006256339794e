package sim

import (
	"math"
	"math/rand"
	"testing"
)

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

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// GIVEN two RNGs with the same key
	rng1 := NewPartitionedRNG(NewSimulationKey(7))
	rng2 := NewPartitionedRNG(NewSimulationKey(7))

	// THEN the sampling streams are identical
	for i := 0; i < 5; i++ {
		a := rng1.ForSubsystem(SubsystemSampling).Int63()
		b := rng2.ForSubsystem(SubsystemSampling).Int63()
		if a != b {
			t.Errorf("draw %d: got %d and %d, want identical", i, a, b)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// GIVEN one RNG that drew heavily from workload and one that did not
	busy := NewPartitionedRNG(NewSimulationKey(42))
	for i := 0; i < 100; i++ {
		busy.ForSubsystem(SubsystemWorkload).Float64()
	}
	fresh := NewPartitionedRNG(NewSimulationKey(42))

	// THEN the sampling stream is unaffected
	if got, want := busy.ForSubsystem(SubsystemSampling).Float64(), fresh.ForSubsystem(SubsystemSampling).Float64(); got != want {
		t.Errorf("sampling stream shifted by workload draws: got %v, want %v", got, want)
	}
}

func TestPartitionedRNG_WorkloadUsesMasterSeed(t *testing.T) {
	seed := int64(2020)
	workload := NewPartitionedRNG(NewSimulationKey(seed)).ForSubsystem(SubsystemWorkload)
	direct := rand.New(rand.NewSource(seed))

	for i := 0; i < 10; i++ {
		if got, want := workload.Float64(), direct.Float64(); got != want {
			t.Errorf("value %d: workload RNG = %v, direct RNG = %v", i, got, want)
		}
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	if rng.ForSubsystem(SubsystemSampling) != rng.ForSubsystem(SubsystemSampling) {
		t.Error("ForSubsystem returned different instances for same name")
	}
	if len(rng.subsystems) != 1 {
		t.Errorf("subsystems = %d, want 1", len(rng.subsystems))
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(12345))
	if rng.Key() != SimulationKey(12345) {
		t.Errorf("Key() = %v, want 12345", rng.Key())
	}
}

func TestFnv1a64_DistinctSubsystems(t *testing.T) {
	if fnv1a64(SubsystemWorkload) == fnv1a64(SubsystemSampling) {
		t.Error("workload and sampling subsystems hash identically")
	}
	if fnv1a64("x") != fnv1a64("x") {
		t.Error("fnv1a64 not deterministic")
	}
}
