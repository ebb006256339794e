package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDispatches    int
	TurnedAway         int
	PriorityDispatches int
	MeanQueueLen       float64
	MaxQueueLen        int
	TotalIdleSeconds   int64
	UniqueNurses       int
	NurseDistribution  map[string]int // nurse name → patients dispatched
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		NurseDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TurnedAway = len(st.TurnAways)
	summary.TotalDispatches = len(st.Dispatches)
	if summary.TotalDispatches > 0 {
		totalQueue := 0
		for _, d := range st.Dispatches {
			summary.NurseDistribution[d.Nurse]++
			if d.Priority {
				summary.PriorityDispatches++
			}
			totalQueue += d.QueueLenAfter
			if d.QueueLenAfter > summary.MaxQueueLen {
				summary.MaxQueueLen = d.QueueLenAfter
			}
			summary.TotalIdleSeconds += d.IdleSeconds()
		}
		summary.MeanQueueLen = float64(totalQueue) / float64(summary.TotalDispatches)
	}

	summary.UniqueNurses = len(summary.NurseDistribution)

	return summary
}
