package middleware

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-bootstrap/internal/logger"
)

// RequestLogger is the default logger slot of the pipeline: TraceID followed
// by AccessLog. production selects the terse access log format.
func RequestLogger(log *logger.Logger, production bool) Middleware {
	return Chain(TraceID(log), AccessLog(production))
}

// AccessLog writes one entry per request through the request-scoped logger.
//
// The terse (production) format records method, uri, status and duration.
// The verbose (development) format adds remote address, protocol, user
// agent, referer and response size.
func AccessLog(production bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			uri := r.RequestURI
			method := r.Method

			lw := wrapResponseWriter(w)
			next.ServeHTTP(lw, r)

			event := logger.FromRequest(r).Info().
				Str("method", method).
				Str("uri", uri).
				Int("status", lw.status).
				Dur("duration", time.Since(start))

			if !production {
				event = event.
					Str("remote_addr", r.RemoteAddr).
					Str("proto", r.Proto).
					Str("user_agent", r.UserAgent()).
					Str("referer", r.Referer()).
					Int("size", lw.size)
			}

			event.Send()
		})
	}
}
