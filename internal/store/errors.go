package store

import "errors"

var (
	// ErrOpen is returned when the driver cannot open the connection pool.
	ErrOpen = errors.New("error opening database")

	// ErrPing is returned when the database does not answer the ping.
	ErrPing = errors.New("error pinging database")

	// ErrMigrate is returned when applying migrations fails.
	ErrMigrate = errors.New("error migrating database")

	// ErrLoadModels is returned when enumerating tables and columns fails.
	ErrLoadModels = errors.New("error loading database models")

	// ErrNotConnected is returned by operations that need an open pool.
	ErrNotConnected = errors.New("database is not connected")

	// ErrEmptyDSN is returned by Connect when no DSN is configured.
	ErrEmptyDSN = errors.New("empty database DSN")

	// ErrBuildingSQLQuery is returned when squirrel cannot build a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrNotFound is returned when a queried key does not exist.
	ErrNotFound = errors.New("not found")
)
