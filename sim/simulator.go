// sim/simulator.go
package sim

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/testlane-sim/sim/trace"
)

// Simulator replays one day at the test lane.
//
// Patients are processed strictly in arrival order. Before a newly arrived
// patient joins the WaitQueue, every nurse who is free at or before that
// arrival takes the first waiting patient in admission order. After the last
// arrival the queue is drained the same way, so nurses work past closing time
// until nobody is left waiting. There is no wall-clock time: Clock only marks
// the arrival currently being processed.
type Simulator struct {
	RunID  string
	Clock  Time
	Config LaneConfig
	// Nurses in the order they were supplied; reporting keeps this order.
	Nurses []*Nurse
	// Patients sorted by (ArrivedAt, Seq). Pointers are shared with the caller.
	Patients []*Patient
	// WaitQ aka patients who have arrived but are not yet being sampled
	WaitQ *WaitQueue
	// NurseQ offers the nurse who becomes available soonest
	NurseQ  *NurseQueue
	Sampler ServiceTimeSampler
	// Trace records dispatch decisions; nil disables tracing.
	Trace   *trace.SimulationTrace
	Metrics *Metrics

	rng *rand.Rand
}

// NewSimulator validates the configuration and prepares a run.
// rng drives the sample durations; nil falls back to a source seeded with 0.
//
// Patients need not be sorted: the simulator establishes arrival order itself,
// breaking ties by Seq.
func NewSimulator(cfg LaneConfig, nurses []*Nurse, patients []*Patient, sampler ServiceTimeSampler, rng *rand.Rand) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sampler == nil {
		return nil, ErrNoSampler
	}

	ordered := make([]*Patient, len(patients))
	copy(ordered, patients)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].ArrivedAt != ordered[j].ArrivedAt {
			return ordered[i].ArrivedAt < ordered[j].ArrivedAt
		}
		return ordered[i].Seq < ordered[j].Seq
	})

	if len(nurses) == 0 {
		for _, p := range ordered {
			if cfg.Accepts(p.ArrivedAt) {
				return nil, errors.Wrapf(ErrNoNurses, "%d patient(s) expected between %s and %s",
					len(ordered), cfg.OpeningTime, cfg.ClosingTime)
			}
		}
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}

	return &Simulator{
		RunID:    uuid.NewString(),
		Clock:    cfg.OpeningTime,
		Config:   cfg,
		Nurses:   nurses,
		Patients: ordered,
		WaitQ:    &WaitQueue{},
		NurseQ:   &NurseQueue{},
		Sampler:  sampler,
		Metrics:  NewMetrics(),
		rng:      rng,
	}, nil
}

// EnableTrace attaches a dispatch trace to the simulator.
// A config with tracing disabled detaches any previous trace.
func (sim *Simulator) EnableTrace(cfg trace.TraceConfig) {
	if !cfg.Enabled() {
		sim.Trace = nil
		return
	}
	sim.Trace = trace.NewSimulationTrace(cfg)
}

// reset puts nurses, patients and queues back to the start of the day.
func (sim *Simulator) reset() {
	sim.Clock = sim.Config.OpeningTime
	sim.WaitQ = &WaitQueue{}
	sim.NurseQ = &NurseQueue{}
	sim.Metrics = NewMetrics()
	sim.Metrics.RunID = sim.RunID
	if sim.Trace != nil {
		sim.Trace = trace.NewSimulationTrace(sim.Trace.Config)
	}
	for _, n := range sim.Nurses {
		n.reset(sim.Config.OpeningTime)
		sim.NurseQ.Enqueue(n)
	}
	for _, p := range sim.Patients {
		p.reset()
	}
}

// Run simulates the day and returns the resulting statistics.
// Running again replays the day from scratch, continuing the same RNG stream.
func (sim *Simulator) Run() *Metrics {
	sim.reset()
	log := logrus.WithField("run", sim.RunID)
	log.Infof("Simulating the sampling of %d patients by %d nurse(s) between %s and %s",
		len(sim.Patients), len(sim.Nurses), sim.Config.OpeningTime, sim.Config.ClosingTime)

	for _, p := range sim.Patients {
		sim.Clock = p.ArrivedAt
		if !sim.Config.Accepts(p.ArrivedAt) {
			sim.turnAway(p)
			continue
		}

		// let nurses take waiting patients until the next free nurse
		// is only available after this patient's arrival
		for sim.WaitQ.Len() > 0 && !sim.NurseQ.Peek().AvailableAt.After(p.ArrivedAt) {
			sim.dispatch()
		}

		sim.WaitQ.Enqueue(p)
		sim.Metrics.Admitted++
		sim.Metrics.MaxQueueLength = max(sim.Metrics.MaxQueueLength, sim.WaitQ.Len())
	}

	// no more arrivals: nurses keep going until the queue is empty
	for sim.WaitQ.Len() > 0 {
		sim.dispatch()
	}

	sim.Metrics.collect(sim.Config, sim.Nurses, sim.Patients)
	log.Infof("Work finished at %s; max queue length %d", sim.Metrics.WorkFinished, sim.Metrics.MaxQueueLength)
	return sim.Metrics
}

// dispatch hands the first waiting patient to the earliest available nurse.
func (sim *Simulator) dispatch() {
	p := sim.WaitQ.Dequeue()
	n := sim.NurseQ.Dequeue()

	freeAt := n.AvailableAt
	start := MaxOf(freeAt, p.ArrivedAt)
	d := sim.Sampler.Sample(sim.rng)
	n.Sample(p, start, d)
	sim.NurseQ.Enqueue(n)

	logrus.Debugf("[%s] %s samples %s (priority=%v, waited %v, takes %v)", start, n.Name, p.ID, p.Priority, p.Wait(), d)

	if sim.Trace != nil {
		sim.Trace.RecordDispatch(trace.DispatchRecord{
			PatientID:       p.ID,
			Priority:        p.Priority,
			Nurse:           n.Name,
			ArrivedAt:       int64(p.ArrivedAt),
			NurseFreeAt:     int64(freeAt),
			StartedAt:       int64(start),
			DurationSeconds: int64(d.Seconds()),
			QueueLenAfter:   sim.WaitQ.Len(),
		})
	}
}

func (sim *Simulator) turnAway(p *Patient) {
	p.State = StateTurnedAway
	sim.Metrics.TurnedAway++
	logrus.Warnf("%s arrived at %s after closing time %s; turned away", p.ID, p.ArrivedAt, sim.Config.ClosingTime)
	if sim.Trace != nil {
		sim.Trace.RecordTurnAway(trace.TurnAwayRecord{PatientID: p.ID, ArrivedAt: int64(p.ArrivedAt)})
	}
}
