package models

import "errors"

var (
	// ErrInvalidConfig is returned when a run configuration fails
	// validation. No partial runner is ever constructed from a config
	// that carries this error.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrStrategyContract is returned when a registered strategy does not
	// satisfy the strategy contract (nil factory, or a factory that
	// produces a nil strategy). Detected at configuration time.
	ErrStrategyContract = errors.New("strategy contract violation")
)
