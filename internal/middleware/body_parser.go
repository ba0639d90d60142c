package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-bootstrap/internal/logger"
	"github.com/MKhiriev/go-bootstrap/internal/utils"
)

// ParserOptions configures a body parser.
type ParserOptions struct {
	// Limit is the maximum body size in bytes. Zero or negative selects
	// DefaultBodyLimit.
	Limit int64

	// ParameterLimit caps the number of url-encoded parameters. Zero or
	// negative selects DefaultParameterLimit. Ignored by the JSON parser.
	ParameterLimit int
}

func (o ParserOptions) limit() int64 {
	if o.Limit <= 0 {
		return DefaultBodyLimit
	}
	return o.Limit
}

func (o ParserOptions) parameterLimit() int {
	if o.ParameterLimit <= 0 {
		return DefaultParameterLimit
	}
	return o.ParameterLimit
}

type bodyCtxKey struct{}

// Body returns the raw body captured by a body parser, or nil when no parser
// consumed the request body.
func Body(r *http.Request) []byte {
	body, _ := r.Context().Value(bodyCtxKey{}).([]byte)
	return body
}

// DecodeJSON unmarshals the body captured by the JSON parser into v.
func DecodeJSON(r *http.Request, v any) error {
	body := Body(r)
	if body == nil {
		return ErrNoParsedBody
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

// JSONParser buffers bodies of application/json (and *+json) requests up to
// the configured limit and stores them on the request context. Bodies over
// the limit are rejected with 413, malformed JSON with 400. The body stays
// readable for downstream handlers.
func JSONParser(opts ParserOptions) Middleware {
	limit := opts.limit()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !hasBody(r) || !isJSON(r) {
				next.ServeHTTP(w, r)
				return
			}

			raw, err := readLimited(r, limit)
			if err != nil {
				reject(w, r, err)
				return
			}

			if len(bytes.TrimSpace(raw)) > 0 && !json.Valid(raw) {
				reject(w, r, ErrInvalidJSON)
				return
			}

			next.ServeHTTP(w, withBody(r, raw))
		})
	}
}

// URLEncodedParser buffers application/x-www-form-urlencoded bodies up to the
// configured limit, enforces the parameter limit and populates r.PostForm and
// r.Form (body values first, then query values).
func URLEncodedParser(opts ParserOptions) Middleware {
	limit := opts.limit()
	parameterLimit := opts.parameterLimit()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !hasBody(r) || mediaType(r) != "application/x-www-form-urlencoded" {
				next.ServeHTTP(w, r)
				return
			}

			raw, err := readLimited(r, limit)
			if err != nil {
				reject(w, r, err)
				return
			}

			if parameterCount(raw) > parameterLimit {
				reject(w, r, ErrTooManyParameters)
				return
			}

			values, err := url.ParseQuery(string(raw))
			if err != nil {
				reject(w, r, fmt.Errorf("%w: %w", ErrInvalidForm, err))
				return
			}

			r = withBody(r, raw)
			r.PostForm = values
			r.Form = make(url.Values, len(values))
			for k, v := range values {
				r.Form[k] = append(r.Form[k], v...)
			}
			for k, v := range r.URL.Query() {
				r.Form[k] = append(r.Form[k], v...)
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasBody(r *http.Request) bool {
	return r.Body != nil && r.Body != http.NoBody && r.ContentLength != 0
}

func mediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return mt
}

func isJSON(r *http.Request) bool {
	mt := mediaType(r)
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// readLimited reads at most limit bytes of the body. One byte over the limit
// yields ErrBodyTooLarge.
func readLimited(r *http.Request, limit int64) ([]byte, error) {
	defer r.Body.Close()

	if r.ContentLength > limit {
		return nil, ErrBodyTooLarge
	}

	reader := io.Reader(r.Body)
	if limit < math.MaxInt64 {
		reader = io.LimitReader(r.Body, limit+1)
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBodyRead, err)
	}
	if int64(len(raw)) > limit {
		return nil, ErrBodyTooLarge
	}

	return raw, nil
}

// parameterCount counts "&"-separated pairs the way form decoders do.
func parameterCount(raw []byte) int {
	if len(raw) == 0 {
		return 0
	}
	return bytes.Count(raw, []byte("&")) + 1
}

func withBody(r *http.Request, raw []byte) *http.Request {
	r = r.WithContext(context.WithValue(r.Context(), bodyCtxKey{}, raw))
	r.Body = io.NopCloser(bytes.NewReader(raw))
	r.ContentLength = int64(len(raw))
	return r
}

func reject(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, ErrBodyTooLarge) || errors.Is(err, ErrTooManyParameters) {
		status = http.StatusRequestEntityTooLarge
	}

	logger.FromRequest(r).Warn().Err(err).Str("uri", r.RequestURI).Int("status", status).Msg("request body rejected")
	utils.WriteError(w, status, err.Error())
}
