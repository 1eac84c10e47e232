package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/droptracker-backend/api/responses"
	"github.com/angelmondragon/droptracker-backend/internal/auth"
	"github.com/angelmondragon/droptracker-backend/pkg/logger"
)

type sessionValidator interface {
	ValidateSession(token string) (*auth.Identity, error)
}

// Auth validates a bearer token and seeds the request context with the caller.
func Auth(validator sessionValidator, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := validator.ValidateSession(bearerToken(r))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithIdentity(r.Context(), identity.UserID, identity.Username)
			if logg != nil {
				ctx = logg.WithUserID(ctx, identity.UserID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>". A
// header without the scheme is taken as the raw token.
func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.EqualFold(raw, "bearer") {
		return ""
	}
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
