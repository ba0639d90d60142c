package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bootstrap/models"
)

func TestFallback(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		target  string
		host    string
		proto   string
		wantURL string
	}{
		{name: "plain GET", method: http.MethodGet, target: "/nope", host: "localhost:3333", wantURL: "http://localhost:3333/nope"},
		{name: "query is kept", method: http.MethodDelete, target: "/a/b?x=1", host: "api.local", wantURL: "http://api.local/a/b?x=1"},
		{name: "forwarded https", method: http.MethodPost, target: "/missing", host: "example.com", proto: "https", wantURL: "https://example.com/missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Host = tt.host
			if tt.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tt.proto)
			}
			rr := httptest.NewRecorder()

			Fallback(rr, req)

			assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, http.StatusMethodNotAllowed, resp.Error.Status)
			assert.Equal(t, tt.wantURL, resp.Error.URL)
			assert.Equal(t, tt.method, resp.Error.Method)
			assert.Equal(t, MsgInvalidRequest, resp.Error.Message)
		})
	}
}
