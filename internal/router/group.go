package router

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-bootstrap/internal/logger"
	"github.com/MKhiriev/go-bootstrap/internal/middleware"
	"github.com/MKhiriev/go-bootstrap/internal/utils"
)

// ErrorCallback is the last link of a group. It receives the error returned
// by a handler and either answers the request itself (returning nil) or
// returns an error for the terminal responder.
type ErrorCallback func(w http.ResponseWriter, r *http.Request, err error) error

// Group is a set of controllers mounted under a common path with shared
// middlewares and error handling.
type Group struct {
	MountPath   string
	Middlewares []middleware.Middleware
	Controllers []*Controller

	// OnError handles handler errors. Nil selects ForwardError.
	OnError ErrorCallback
}

func (g Group) onError() ErrorCallback {
	if g.OnError == nil {
		return ForwardError
	}
	return g.OnError
}

// ForwardError is the default error callback: it passes err on unchanged.
func ForwardError(_ http.ResponseWriter, _ *http.Request, err error) error {
	return err
}

// RespondError is the terminal responder for errors no callback handled. It
// logs err and answers 500 unless a response was already started.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	sw := middleware.WrapResponseWriter(w)

	logger.FromRequest(r).Error().Err(err).
		Str("method", r.Method).
		Str("uri", r.RequestURI).
		Bool("response_written", sw.Written()).
		Msg("unhandled error in request handler")

	if sw.Written() {
		return
	}
	utils.WriteError(sw, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// Resolver produces controller instances.
type Resolver interface {
	Resolve(ctx context.Context, c *Controller) (any, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, c *Controller) (any, error)

func (f ResolverFunc) Resolve(ctx context.Context, c *Controller) (any, error) {
	return f(ctx, c)
}
