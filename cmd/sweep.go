package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/testlane-sim/sim"
)

var (
	// CLI flags for sweep
	sweepMinNurses int // Smallest nurse count
	sweepMaxNurses int // Largest nurse count
	sweepParallel  int // Concurrent simulations
)

// sweepResult holds the outcome of one staffing level.
type sweepResult struct {
	Nurses  int
	Metrics *sim.Metrics
}

// sweepCmd simulates the same day once per nurse count to find a staffing level
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Simulate the same day for a range of nurse counts",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		sc, err := resolveScenario(cmd)
		if err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}
		results, err := sweepNurses(cmd.Context(), sc, sweepMinNurses, sweepMaxNurses, sweepParallel)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		printSweep(cmd.OutOrStdout(), results)
	},
}

// sweepNurses runs one independent simulation per nurse count in [minNurses, maxNurses].
// Every run regenerates its patients from the scenario seed, so all staffing
// levels face the same day. Results are returned in nurse-count order.
func sweepNurses(ctx context.Context, sc Scenario, minNurses, maxNurses, parallel int) ([]sweepResult, error) {
	if minNurses < 0 || maxNurses < minNurses {
		return nil, fmt.Errorf("invalid nurse range [%d, %d]", minNurses, maxNurses)
	}
	if parallel < 1 {
		parallel = 1
	}
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]sweepResult, maxNurses-minNurses+1)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := range results {
		i := i
		n := minNurses + i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			day := sc
			day.Nurses = n
			day.TraceLevel = ""
			_, metrics, err := simulateDay(day)
			if err != nil {
				return fmt.Errorf("%d nurses: %w", n, err)
			}
			logrus.WithField("run", metrics.RunID).Debugf("sweep: %d nurses finished at %s", n, metrics.WorkFinished)
			results[i] = sweepResult{Nurses: n, Metrics: metrics}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printSweep(w io.Writer, results []sweepResult) {
	fmt.Fprintln(w, "Nurses: Finished: Max queue: Avg. wait regular: Avg. wait priority: Turned away:")
	for _, r := range results {
		m := r.Metrics
		fmt.Fprintf(w, "%6d %9s %10d %18.2f %19.2f %12d\n",
			r.Nurses, m.WorkFinished, m.MaxQueueLength,
			m.Regular.AverageWait.Seconds(), m.Priority.AverageWait.Seconds(), m.TurnedAway)
	}
}
