package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-bootstrap/internal/logger"
	"github.com/MKhiriev/go-bootstrap/internal/utils"
)

// Recover logs panics raised by downstream handlers and answers 500 instead
// of letting the connection die. http.ErrAbortHandler is re-raised so the
// server can abort the response as intended.
func Recover(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lw := wrapResponseWriter(w)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("uri", r.RequestURI).
					Bytes("stack", debug.Stack()).
					Msg("recovered from panic in request handler")

				if !lw.Written() {
					utils.WriteError(lw, http.StatusInternalServerError, MsgInternalServerError)
				}
			}()

			next.ServeHTTP(lw, r)
		})
	}
}
