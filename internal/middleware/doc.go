// Package middleware implements the cross-cutting HTTP handlers the
// bootstrap installs around every route: CORS, JSON and url-encoded body
// parsing, request logging with trace ids, panic recovery, gzip, a bearer
// token guard and the terminal fallback for unmatched requests.
//
// Every handler has the chi/net-http middleware shape
// func(http.Handler) http.Handler. [Pipeline] groups the configurable slots
// and installs them in the fixed order
//
//	CORS → JSON parser → url-encoded parser → request logger
//
// so that bodies are parsed before any handler reads them and CORS headers
// are set before any response is produced.
package middleware
