package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bootstrap/internal/logger"
)

func newTestLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.New("test", buf)
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name          string
		production    bool
		method        string
		target        string
		handlerStatus int
		body          string
		wantStatus    float64
		wantVerbose   bool
	}{
		{
			name:          "terse entry in production",
			production:    true,
			method:        http.MethodGet,
			target:        "/api/users?limit=10",
			handlerStatus: http.StatusOK,
			body:          "ok",
			wantStatus:    200,
		},
		{
			name:          "verbose entry in development",
			method:        http.MethodPost,
			target:        "/api/users",
			handlerStatus: http.StatusCreated,
			body:          "created",
			wantStatus:    201,
			wantVerbose:   true,
		},
		{
			name:          "error status is recorded",
			production:    true,
			method:        http.MethodDelete,
			target:        "/api/users/1",
			handlerStatus: http.StatusNotFound,
			wantStatus:    404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := RequestLogger(newTestLogger(&buf), tt.production)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
				_, _ = w.Write([]byte(tt.body))
			}))

			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Header.Set("User-Agent", "bootstrap-test")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			entry := lastEntry(t, &buf)
			assert.Equal(t, tt.method, entry["method"])
			assert.Equal(t, tt.target, entry["uri"])
			assert.Equal(t, tt.wantStatus, entry["status"])
			assert.Contains(t, entry, "duration")
			assert.Equal(t, rr.Header().Get(TraceIDHeader), entry["trace_id"])

			if tt.wantVerbose {
				assert.Equal(t, "bootstrap-test", entry["user_agent"])
				assert.Equal(t, float64(len(tt.body)), entry["size"])
				assert.Contains(t, entry, "remote_addr")
			} else {
				assert.NotContains(t, entry, "user_agent")
				assert.NotContains(t, entry, "size")
			}
		})
	}
}

// TestAccessLog_ImplicitStatus verifies that a handler writing only a body
// is logged with 200.
func TestAccessLog_ImplicitStatus(t *testing.T) {
	var buf bytes.Buffer
	handler := RequestLogger(newTestLogger(&buf), true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, float64(200), lastEntry(t, &buf)["status"])
}
