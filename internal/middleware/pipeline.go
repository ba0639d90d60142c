package middleware

import (
	"net/http"

	"github.com/MKhiriev/go-bootstrap/internal/logger"
)

// BodyParsers holds the two body parser slots of the pipeline.
type BodyParsers struct {
	JSON       Middleware
	URLEncoded Middleware
}

// Pipeline is the configurable middleware state wrapped around the router
// after the server starts listening.
type Pipeline struct {
	CORS        Middleware
	BodyParsers BodyParsers

	// Logger overrides the default request logger when non-nil.
	Logger Middleware
}

// DefaultPipeline returns the pipeline with permissive CORS and both body
// parsers using the default limits. The logger slot is left empty so the
// production flag can pick the default format at install time.
func DefaultPipeline() Pipeline {
	opts := ParserOptions{Limit: DefaultBodyLimit, ParameterLimit: DefaultParameterLimit}
	return Pipeline{
		CORS: DefaultCORS(nil),
		BodyParsers: BodyParsers{
			JSON:       JSONParser(opts),
			URLEncoded: URLEncodedParser(opts),
		},
	}
}

// WithBodyParsers returns a copy with only the non-nil parsers of b replaced.
// An empty BodyParsers leaves the pipeline unchanged.
func (p Pipeline) WithBodyParsers(b BodyParsers) Pipeline {
	if b.JSON != nil {
		p.BodyParsers.JSON = b.JSON
	}
	if b.URLEncoded != nil {
		p.BodyParsers.URLEncoded = b.URLEncoded
	}
	return p
}

// Handlers returns the pipeline in installation order: CORS, JSON parser,
// url-encoded parser, then the configured logger or RequestLogger. Empty
// slots are skipped.
func (p Pipeline) Handlers(log *logger.Logger, production bool) []Middleware {
	reqLogger := p.Logger
	if reqLogger == nil {
		reqLogger = RequestLogger(log, production)
	}

	ordered := []Middleware{p.CORS, p.BodyParsers.JSON, p.BodyParsers.URLEncoded, reqLogger}
	handlers := make([]Middleware, 0, len(ordered))
	for _, h := range ordered {
		if h != nil {
			handlers = append(handlers, h)
		}
	}
	return handlers
}

// Wrap returns next wrapped by the pipeline. The pipeline sits outside the
// router so it also runs for requests no route matches, including on a
// router with no routes at all.
func (p Pipeline) Wrap(next http.Handler, log *logger.Logger, production bool) http.Handler {
	return Chain(p.Handlers(log, production)...)(next)
}
