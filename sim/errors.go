package sim

import "github.com/pkg/errors"

// Configuration errors returned by NewSimulator and the constructors it relies on.
// Callers match them with errors.Is; returned errors carry extra context.
var (
	// ErrNoNurses: patients were supplied but nobody is on duty to sample them.
	ErrNoNurses = errors.New("no nurses on duty")

	// ErrInvalidWindow: closing time precedes opening time.
	ErrInvalidWindow = errors.New("closing time before opening time")

	// ErrNoSampler: no sample-duration policy was configured.
	ErrNoSampler = errors.New("no sample-duration policy")

	// ErrInvalidServiceTime: a sample-duration policy was configured with unusable bounds.
	ErrInvalidServiceTime = errors.New("invalid sample-duration policy")
)
