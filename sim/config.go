package sim

import (
	"time"

	"github.com/pkg/errors"
)

// LaneConfig groups the opening hours of the test lane.
// ClosingTime bounds the arrival of new patients only: nurses keep sampling
// past closing until the waiting queue is empty.
type LaneConfig struct {
	OpeningTime Time `yaml:"opening"`
	ClosingTime Time `yaml:"closing"`
}

// NewLaneConfig creates a LaneConfig.
func NewLaneConfig(opening, closing Time) LaneConfig {
	return LaneConfig{OpeningTime: opening, ClosingTime: closing}
}

// Window is the nominal working day, closing minus opening.
func (c LaneConfig) Window() time.Duration {
	return c.ClosingTime.Sub(c.OpeningTime)
}

// Accepts reports whether a patient arriving at t is let into the queue.
func (c LaneConfig) Accepts(t Time) bool {
	return !t.After(c.ClosingTime)
}

// Validate checks that the lane closes no earlier than it opens.
func (c LaneConfig) Validate() error {
	if c.ClosingTime.Before(c.OpeningTime) {
		return errors.Wrapf(ErrInvalidWindow, "opening %s, closing %s", c.OpeningTime, c.ClosingTime)
	}
	return nil
}

// ServiceConfig selects and parameterises the sample-duration policy.
type ServiceConfig struct {
	Distribution string        `yaml:"distribution"` // "uniform" (default), "fixed", "exponential"
	Min          time.Duration `yaml:"min"`          // uniform lower bound (inclusive), exponential floor
	Max          time.Duration `yaml:"max"`          // uniform upper bound (exclusive)
	Mean         time.Duration `yaml:"mean"`         // exponential mean
	Fixed        time.Duration `yaml:"fixed"`        // fixed duration
}

// DefaultServiceConfig samples uniformly between 60 and 159 seconds.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Distribution: "uniform",
		Min:          60 * time.Second,
		Max:          160 * time.Second,
		Mean:         110 * time.Second,
		Fixed:        110 * time.Second,
	}
}
