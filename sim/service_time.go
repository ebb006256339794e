package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// ServiceTimeSampler draws the duration of a single sample.
// Implementations must return whole, non-negative seconds and draw only from rng.
type ServiceTimeSampler interface {
	Sample(rng *rand.Rand) time.Duration
}

// UniformServiceTime draws whole seconds uniformly from [Min, Max).
type UniformServiceTime struct {
	Min, Max time.Duration
}

func (u *UniformServiceTime) Sample(rng *rand.Rand) time.Duration {
	lo, hi := int64(u.Min/time.Second), int64(u.Max/time.Second)
	if hi <= lo {
		return time.Duration(lo) * time.Second
	}
	return time.Duration(lo+rng.Int63n(hi-lo)) * time.Second
}

// FixedServiceTime always returns Duration. Useful for deterministic scenarios.
type FixedServiceTime struct {
	Duration time.Duration
}

func (f *FixedServiceTime) Sample(_ *rand.Rand) time.Duration {
	return f.Duration.Truncate(time.Second)
}

// ExponentialServiceTime draws exponentially distributed durations with the
// given Mean, rounded to whole seconds and floored at Min.
type ExponentialServiceTime struct {
	Mean time.Duration
	Min  time.Duration
}

func (e *ExponentialServiceTime) Sample(rng *rand.Rand) time.Duration {
	secs := math.Round(rng.ExpFloat64() * e.Mean.Seconds())
	d := time.Duration(secs) * time.Second
	floor := e.Min.Truncate(time.Second)
	if d < floor {
		return floor
	}
	return d
}

// validServiceDistributions maps accepted distribution names.
var validServiceDistributions = map[string]bool{
	"":            true, // empty defaults to uniform
	"uniform":     true,
	"fixed":       true,
	"exponential": true,
}

// IsValidServiceDistribution returns true if name is a recognised distribution.
func IsValidServiceDistribution(name string) bool {
	return validServiceDistributions[name]
}

// NewServiceTimeSampler creates a ServiceTimeSampler from cfg.
// Empty Distribution defaults to uniform.
func NewServiceTimeSampler(cfg ServiceConfig) (ServiceTimeSampler, error) {
	if !IsValidServiceDistribution(cfg.Distribution) {
		return nil, errors.Wrapf(ErrInvalidServiceTime, "unknown distribution %q", cfg.Distribution)
	}
	switch cfg.Distribution {
	case "", "uniform":
		if cfg.Min < 0 || cfg.Max <= cfg.Min {
			return nil, errors.Wrapf(ErrInvalidServiceTime, "uniform bounds [%v, %v)", cfg.Min, cfg.Max)
		}
		return &UniformServiceTime{Min: cfg.Min, Max: cfg.Max}, nil
	case "fixed":
		if cfg.Fixed < 0 {
			return nil, errors.Wrapf(ErrInvalidServiceTime, "fixed duration %v", cfg.Fixed)
		}
		return &FixedServiceTime{Duration: cfg.Fixed}, nil
	default: // "exponential"
		if cfg.Mean <= 0 || cfg.Min < 0 {
			return nil, errors.Wrapf(ErrInvalidServiceTime, "exponential mean %v, min %v", cfg.Mean, cfg.Min)
		}
		return &ExponentialServiceTime{Mean: cfg.Mean, Min: cfg.Min}, nil
	}
}
