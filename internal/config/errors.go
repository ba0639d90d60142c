package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrInvalidServerConfigs indicates an out-of-range port or a negative
	// shutdown timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidMiddlewareConfigs indicates negative body or parameter limits.
	ErrInvalidMiddlewareConfigs = errors.New("invalid middleware configuration")
	// ErrInvalidAppConfigs indicates a token sign key without an issuer.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
)
