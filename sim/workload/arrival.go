package workload

import (
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/inference-sim/testlane-sim/sim"
)

// ArrivalProcess draws up to n arrival times inside [opening, closing).
// Returned times are sorted ascending.
type ArrivalProcess interface {
	Arrivals(rng *rand.Rand, n int, opening, closing sim.Time) []sim.Time
}

// UniformArrivals spreads exactly n arrivals uniformly over the opening hours.
// With an empty window every patient arrives at opening.
type UniformArrivals struct{}

func (UniformArrivals) Arrivals(rng *rand.Rand, n int, opening, closing sim.Time) []sim.Time {
	window := int64(closing - opening)
	times := make([]sim.Time, 0, n)
	for i := 0; i < n; i++ {
		t := opening
		if window > 0 {
			t += sim.Time(rng.Int63n(window))
		}
		times = append(times, t)
	}
	slices.Sort(times)
	return times
}

// PoissonArrivals generates exponentially distributed inter-arrival times (CV=1)
// at a rate of n per window. Arrivals stop at closing, so fewer than n may be returned.
type PoissonArrivals struct{}

func (PoissonArrivals) Arrivals(rng *rand.Rand, n int, opening, closing sim.Time) []sim.Time {
	return renewalArrivals(n, opening, closing, func(mean float64) float64 {
		return rng.ExpFloat64() * mean
	})
}

// GammaArrivals generates Gamma-distributed inter-arrival times.
// CV > 1 produces bursty arrivals: long quiet spells, then crowds.
type GammaArrivals struct {
	CV float64
}

func (g GammaArrivals) Arrivals(rng *rand.Rand, n int, opening, closing sim.Time) []sim.Time {
	shape := 1.0 / (g.CV * g.CV)
	return renewalArrivals(n, opening, closing, func(mean float64) float64 {
		return gammaRand(rng, shape, mean/shape)
	})
}

// renewalArrivals accumulates inter-arrival times with the given mean (seconds)
// until n arrivals are drawn or closing is reached.
func renewalArrivals(n int, opening, closing sim.Time, iat func(mean float64) float64) []sim.Time {
	window := float64(closing - opening)
	if n <= 0 || window <= 0 {
		return []sim.Time{}
	}
	mean := window / float64(n)
	times := make([]sim.Time, 0, n)
	elapsed := 0.0
	for len(times) < n {
		elapsed += iat(mean)
		if elapsed >= window {
			break
		}
		times = append(times, opening+sim.Time(elapsed))
	}
	return times
}

// gammaRand samples from Gamma(shape, scale) using Marsaglia-Tsang's method.
// For shape >= 1: direct method.
// For shape < 1: Gamma(shape) = Gamma(shape+1) * U^(1/shape).
func gammaRand(rng *rand.Rand, shape, scale float64) float64 {
	if shape < 1.0 {
		u := rng.Float64()
		return gammaRand(rng, shape+1.0, scale) * math.Pow(u, 1.0/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()

		// Squeeze test
		if u < 1.0-0.0331*(x*x)*(x*x) {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// NewArrivalProcess creates an ArrivalProcess by name.
// Empty name defaults to uniform. cv is only used by "gamma".
func NewArrivalProcess(name string, cv float64) (ArrivalProcess, error) {
	switch name {
	case "", "uniform":
		return UniformArrivals{}, nil
	case "poisson":
		return PoissonArrivals{}, nil
	case "gamma":
		if cv <= 0 || math.IsNaN(cv) || math.IsInf(cv, 0) {
			return nil, fmt.Errorf("gamma arrivals need a positive finite CV, got %v", cv)
		}
		return GammaArrivals{CV: cv}, nil
	default:
		return nil, fmt.Errorf("unknown arrival process %q", name)
	}
}
