package database

import "errors"

var (
	// ErrConnect wraps the first module failure reported by ConnectAll.
	ErrConnect = errors.New("error connecting database")

	// ErrDuplicateDatabase is returned when two modules share a name.
	ErrDuplicateDatabase = errors.New("duplicate database name")

	// ErrEmptyName is returned for modules with an empty name.
	ErrEmptyName = errors.New("database module has an empty name")
)
