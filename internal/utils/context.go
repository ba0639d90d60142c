// Package utils provides general-purpose helpers shared by the bootstrap
// packages: typed context keys, JSON response writing, URL reconstruction,
// JWT parsing and trace id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, preventing collisions with
// string keys set by other packages.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// SubjectCtxKey stores the authenticated token subject in the context.
// Set by the bearer-token guard, read with GetSubjectFromContext.
var SubjectCtxKey = contextKey("subject")

// GetSubjectFromContext returns the token subject stored in ctx and whether
// it was present.
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectCtxKey).(string)
	return subject, ok
}
