package engine

import "errors"

// Sentinel errors returned by the engine.
var (
	// ErrInvalidBase is returned when the configured base is below 2.
	ErrInvalidBase = errors.New("base must be at least 2")

	// ErrInvalidWorkerCount is returned when Start is given fewer than one worker.
	ErrInvalidWorkerCount = errors.New("worker count must be at least 1")

	// ErrAlreadyStarted is returned when Start is called twice on the same engine.
	ErrAlreadyStarted = errors.New("workers already started")
)
