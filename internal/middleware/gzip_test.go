package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipBytes(t *testing.T, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func gunzip(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer zr.Close()
	out, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(out)
}

func TestGZip(t *testing.T) {
	tests := []struct {
		name           string
		body           io.Reader
		contentEnc     string
		acceptEnc      string
		wantStatus     int
		wantRequest    string
		wantCompressed bool
	}{
		{
			name:        "plain request, plain response",
			body:        strings.NewReader(`{"k":"v"}`),
			wantStatus:  http.StatusOK,
			wantRequest: `{"k":"v"}`,
		},
		{
			name:        "gzip request is inflated",
			body:        bytes.NewReader(gzipBytes(t, `{"k":"zipped"}`)),
			contentEnc:  "gzip",
			wantStatus:  http.StatusOK,
			wantRequest: `{"k":"zipped"}`,
		},
		{
			name:           "response compressed on accept",
			body:           strings.NewReader("x"),
			acceptEnc:      "gzip, deflate",
			wantStatus:     http.StatusOK,
			wantRequest:    "x",
			wantCompressed: true,
		},
		{
			name:       "broken gzip request",
			body:       strings.NewReader("not gzip at all"),
			contentEnc: "gzip",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := GZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				b, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				seen = string(b)
				_, _ = w.Write([]byte("response:" + seen))
			}))

			req := httptest.NewRequest(http.MethodPost, "/", tt.body)
			if tt.contentEnc != "" {
				req.Header.Set("Content-Encoding", tt.contentEnc)
			}
			if tt.acceptEnc != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEnc)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.Equal(t, tt.wantRequest, seen)
			if tt.wantCompressed {
				assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
				assert.Equal(t, "response:"+tt.wantRequest, gunzip(t, rr.Body.Bytes()))
			} else {
				assert.Empty(t, rr.Header().Get("Content-Encoding"))
				assert.Equal(t, "response:"+tt.wantRequest, rr.Body.String())
			}
		})
	}
}

func TestGZip_EmptyResponse(t *testing.T) {
	handler := GZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.Bytes())
}
