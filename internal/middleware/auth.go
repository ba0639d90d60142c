package middleware

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-bootstrap/internal/logger"
	"github.com/MKhiriev/go-bootstrap/internal/utils"
)

// RequireBearerToken is a per-route guard that accepts only requests with a
// valid "Authorization: Bearer <jwt>" header signed with signKey and issued
// by issuer. The token subject is stored under [utils.SubjectCtxKey].
//
// Rejections answer 401 with a JSON error body and are logged through the
// request-scoped logger.
func RequireBearerToken(signKey, issuer string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
			if err != nil {
				log.Warn().Err(err).Msg("rejected request without bearer token")
				utils.WriteError(w, http.StatusUnauthorized, MsgUnauthorized)
				return
			}

			token, err := utils.ValidateAndParseJWTToken(tokenString, signKey, issuer)
			if err != nil {
				log.Warn().Err(err).Msg("rejected request with invalid bearer token")
				utils.WriteError(w, http.StatusUnauthorized, MsgUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), utils.SubjectCtxKey, token.Subject())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
