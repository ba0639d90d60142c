// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package middleware

import "errors"

// Human-readable messages written into error response bodies.
const (
	// MsgInvalidRequest is returned by the fallback for requests that matched
	// no registered route.
	MsgInvalidRequest = "Invalid Request"

	// MsgInternalServerError is returned when a handler panicked.
	MsgInternalServerError = "internal server error"

	// MsgUnauthorized is returned by the bearer token guard.
	MsgUnauthorized = "unauthorized"
)

// Errors produced while parsing request bodies.
var (
	// ErrBodyTooLarge is returned when a body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request entity too large")

	// ErrTooManyParameters is returned when a url-encoded body carries more
	// parameters than the configured parameter limit.
	ErrTooManyParameters = errors.New("too many parameters")

	// ErrInvalidJSON is returned when a JSON body is not well-formed.
	ErrInvalidJSON = errors.New("invalid JSON body")

	// ErrInvalidForm is returned when a url-encoded body cannot be parsed.
	ErrInvalidForm = errors.New("invalid url-encoded body")

	// ErrBodyRead is returned when reading the body fails mid-stream.
	ErrBodyRead = errors.New("error reading request body")

	// ErrNoParsedBody is returned by DecodeJSON when no JSON body was parsed.
	ErrNoParsedBody = errors.New("no parsed JSON body on request")
)
