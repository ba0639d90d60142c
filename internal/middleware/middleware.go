package middleware

import (
	"math"
	"net/http"
)

// Middleware is the handler-wrapping shape shared with chi.
type Middleware = func(http.Handler) http.Handler

// Default parser limits: a 50 MB body ceiling and an effectively unbounded
// number of url-encoded parameters.
const (
	DefaultBodyLimit      int64 = 50 << 20
	DefaultParameterLimit       = math.MaxInt
)

// Chain composes middlewares so that the first one is the outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			if middlewares[i] != nil {
				next = middlewares[i](next)
			}
		}
		return next
	}
}
