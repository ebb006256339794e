package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/testlane-sim/sim"
	"github.com/inference-sim/testlane-sim/sim/trace"
	"github.com/inference-sim/testlane-sim/sim/workload"
)

// simulateDay generates the patients for sc and runs one simulated day.
// Patients come from the workload stream and sample durations from the
// sampling stream, so changing the service policy keeps the same patients.
func simulateDay(sc Scenario) (*sim.Simulator, *sim.Metrics, error) {
	if err := sc.Validate(); err != nil {
		return nil, nil, err
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(sc.Seed))

	patients, err := workload.GeneratePatients(sc.Workload, sc.Lane.OpeningTime, sc.Lane.ClosingTime,
		rng.ForSubsystem(sim.SubsystemWorkload))
	if err != nil {
		return nil, nil, err
	}
	sampler, err := sim.NewServiceTimeSampler(sc.Service)
	if err != nil {
		return nil, nil, err
	}
	nurses := sim.NewNurses(sc.Nurses, sc.Lane.OpeningTime)

	s, err := sim.NewSimulator(sc.Lane, nurses, patients, sampler, rng.ForSubsystem(sim.SubsystemSampling))
	if err != nil {
		return nil, nil, err
	}
	s.EnableTrace(trace.TraceConfig{Level: trace.TraceLevel(sc.TraceLevel)})
	logrus.WithField("run", s.RunID).Debugf("simulation key %d, %d nurses", rng.Key(), sc.Nurses)
	return s, s.Run(), nil
}

// printTraceSummary renders the aggregate of a dispatch trace.
func printTraceSummary(w io.Writer, st *trace.SimulationTrace) {
	summary := trace.Summarize(st)
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Total Dispatches: %d\n", summary.TotalDispatches)
	fmt.Fprintf(w, "Priority Dispatches: %d\n", summary.PriorityDispatches)
	fmt.Fprintf(w, "Turned Away: %d\n", summary.TurnedAway)
	fmt.Fprintf(w, "Mean Queue Length: %.2f\n", summary.MeanQueueLen)
	fmt.Fprintf(w, "Max Queue Length: %d\n", summary.MaxQueueLen)
	fmt.Fprintf(w, "Total Nurse Idle Time: %ds\n", summary.TotalIdleSeconds)
	fmt.Fprintf(w, "Unique Nurses: %d\n", summary.UniqueNurses)
	names := make([]string, 0, len(summary.NurseDistribution))
	for name := range summary.NurseDistribution {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %d\n", name, summary.NurseDistribution[name])
	}
}
