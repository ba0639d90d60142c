package middleware

import (
	"net/http"

	"github.com/MKhiriev/go-bootstrap/internal/utils"
	"github.com/MKhiriev/go-bootstrap/models"
)

// Fallback is the terminal handler for requests that matched no route. It is
// registered as the router's NotFound and MethodNotAllowed handler once every
// route group is mounted, and answers 405 with the reconstructed URL, the
// method and [MsgInvalidRequest]. It never forwards.
func Fallback(w http.ResponseWriter, r *http.Request) {
	resp := models.ErrorResponse{
		Error: models.ErrorBody{
			Status:  http.StatusMethodNotAllowed,
			URL:     utils.RequestURL(r),
			Method:  r.Method,
			Message: MsgInvalidRequest,
		},
	}

	_, _ = utils.WriteJSON(w, resp, http.StatusMethodNotAllowed)
}
