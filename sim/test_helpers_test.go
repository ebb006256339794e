package sim

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inference-sim/testlane-sim/sim/trace"
)

// testGeneratePatients draws n patients uniformly within [opening, closing).
// Kept local to sim: sim/workload imports sim, so its generator is not usable here.
func testGeneratePatients(seed int64, n int, opening, closing Time, priorityFraction float64) []*Patient {
	rng := rand.New(rand.NewSource(seed))
	window := int64(closing - opening)
	patients := make([]*Patient, 0, n)
	for i := 0; i < n; i++ {
		arrival := opening
		if window > 0 {
			arrival += Time(rng.Int63n(window))
		}
		patients = append(patients, NewPatient(fmt.Sprintf("patient_%d", i), i, arrival, rng.Float64() < priorityFraction))
	}
	return patients
}

// at is shorthand for a time of day on the simulated day.
func at(hour, minute, second int) Time {
	return NewTime(hour, minute, second)
}

// mustSimulator builds a simulator or fails the test.
func mustSimulator(t *testing.T, cfg LaneConfig, nurses []*Nurse, patients []*Patient, sampler ServiceTimeSampler, seed int64) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg, nurses, patients, sampler, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return s
}

// assertDispatchInvariants checks the ordering, causality, no-overlap and
// conservation guarantees of a finished, traced run.
func assertDispatchInvariants(t *testing.T, s *Simulator) {
	t.Helper()
	require.NotNil(t, s.Trace, "run must be traced")

	// Conservation: every admitted patient sampled exactly once.
	admitted := 0
	seen := make(map[string]int)
	for _, d := range s.Trace.Dispatches {
		seen[d.PatientID]++
	}
	for _, p := range s.Patients {
		if p.State == StateTurnedAway {
			require.Nil(t, p.SampledBy, "%s turned away but sampled", p.ID)
			continue
		}
		admitted++
		require.NotNil(t, p.SampledBy, "%s never sampled", p.ID)
		require.Equal(t, 1, seen[p.ID], "%s dispatch count", p.ID)
		// Causality.
		require.False(t, p.SampledAt.Before(p.ArrivedAt), "%s sampled at %s before arrival %s", p.ID, p.SampledAt, p.ArrivedAt)
	}
	require.Equal(t, admitted, s.Metrics.TotalSampled())
	require.Equal(t, admitted, s.Metrics.Admitted)

	// No overlap, and availability advances by exactly the previous duration.
	lastEnd := make(map[string]int64)
	for _, d := range s.Trace.Dispatches {
		if end, ok := lastEnd[d.Nurse]; ok {
			require.Equal(t, end, d.NurseFreeAt, "%s availability before %s", d.Nurse, d.PatientID)
		}
		require.GreaterOrEqual(t, d.StartedAt, d.NurseFreeAt)
		lastEnd[d.Nurse] = d.StartedAt + d.DurationSeconds
	}
	perNurse := make(map[*Nurse][]*Patient)
	for _, p := range s.Patients {
		if p.SampledBy != nil {
			perNurse[p.SampledBy] = append(perNurse[p.SampledBy], p)
		}
	}
	for n, ps := range perNurse {
		sort.Slice(ps, func(i, j int) bool { return ps[i].SampledAt < ps[j].SampledAt })
		for i := 1; i < len(ps); i++ {
			prevEnd := ps[i-1].SampledAt.Add(ps[i-1].SampleDuration)
			require.False(t, ps[i].SampledAt.Before(prevEnd), "%s overlaps %s and %s", n.Name, ps[i-1].ID, ps[i].ID)
		}
		require.Equal(t, n.AvailableAt, ps[len(ps)-1].SampledAt.Add(ps[len(ps)-1].SampleDuration))
	}

	// Admission order: a patient ranked ahead of b who had already arrived when
	// b's nurse became free is never sampled after b.
	byID := make(map[string]*Patient, len(s.Patients))
	for _, p := range s.Patients {
		byID[p.ID] = p
	}
	for _, d := range s.Trace.Dispatches {
		b := byID[d.PatientID]
		for _, a := range s.Patients {
			if a == b || a.SampledBy == nil || !AdmittedBefore(a, b) {
				continue
			}
			if int64(a.ArrivedAt) < d.NurseFreeAt {
				require.False(t, a.SampledAt.After(b.SampledAt),
					"%s (priority=%v, arrived %s) sampled at %s after %s (priority=%v) at %s",
					a.ID, a.Priority, a.ArrivedAt, a.SampledAt, b.ID, b.Priority, b.SampledAt)
			}
		}
	}
}

func fixed(d time.Duration) ServiceTimeSampler {
	return &FixedServiceTime{Duration: d}
}

func traced(s *Simulator) *Simulator {
	s.EnableTrace(trace.TraceConfig{Level: trace.TraceLevelDispatches})
	return s
}
