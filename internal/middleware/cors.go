package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// DefaultCORS returns the permissive CORS handler used when no override is
// configured: any origin (or the given ones), all common methods and
// headers, and the trace id header exposed to browsers.
func DefaultCORS(origins []string) Middleware {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{TraceIDHeader},
		MaxAge:         300,
	})
}
