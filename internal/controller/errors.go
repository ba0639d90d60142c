package controller

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-bootstrap/internal/logger"
	"github.com/MKhiriev/go-bootstrap/internal/middleware"
	"github.com/MKhiriev/go-bootstrap/internal/store"
	"github.com/MKhiriev/go-bootstrap/internal/utils"
)

// ErrNoInfoStore is returned by the info endpoint when no database module
// keeps app_info.
var ErrNoInfoStore = errors.New("no app info store configured")

var errorStatusMap = map[error]int{
	middleware.ErrInvalidJSON:  http.StatusBadRequest,
	middleware.ErrNoParsedBody: http.StatusUnsupportedMediaType,

	store.ErrNotFound:     http.StatusNotFound,
	store.ErrNotConnected: http.StatusServiceUnavailable,
	ErrNoInfoStore:        http.StatusNotFound,
}

func statusFromError(err error) (int, bool) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, true
		}
	}
	return 0, false
}

// MapErrors is a group error callback answering known errors with their
// status code and a JSON error body. Unknown errors are forwarded.
func MapErrors(w http.ResponseWriter, r *http.Request, err error) error {
	status, ok := statusFromError(err)
	if !ok {
		return err
	}

	logger.FromRequest(r).Warn().Err(err).Int("status", status).Msg("request failed")
	utils.WriteError(w, status, err.Error())
	return nil
}
