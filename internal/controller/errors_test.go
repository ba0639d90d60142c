package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-bootstrap/internal/middleware"
	"github.com/MKhiriev/go-bootstrap/internal/store"
)

func TestMapErrors(t *testing.T) {
	unknown := errors.New("boom")

	tests := []struct {
		name       string
		err        error
		wantErr    error
		wantStatus int
	}{
		{name: "invalid json", err: fmt.Errorf("%w: eof", middleware.ErrInvalidJSON), wantStatus: http.StatusBadRequest},
		{name: "no parsed body", err: middleware.ErrNoParsedBody, wantStatus: http.StatusUnsupportedMediaType},
		{name: "not found", err: fmt.Errorf("get: %w", store.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "not connected", err: store.ErrNotConnected, wantStatus: http.StatusServiceUnavailable},
		{name: "no info store", err: ErrNoInfoStore, wantStatus: http.StatusNotFound},
		{name: "unknown", err: unknown, wantErr: unknown, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			err := MapErrors(rec, req, tt.err)

			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				assert.Contains(t, rec.Body.String(), `"error"`)
			} else {
				assert.Empty(t, rec.Body.String())
			}
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
