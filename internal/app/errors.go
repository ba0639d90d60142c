package app

import "errors"

var (
	// ErrListen is returned by Start when the HTTP (or health) listener
	// cannot be bound. It is fatal: no startup sequence runs.
	ErrListen = errors.New("error starting application listener")

	// ErrStartupPanic is reported by Running.Err when a startup stage
	// panicked.
	ErrStartupPanic = errors.New("panic during application startup")
)
