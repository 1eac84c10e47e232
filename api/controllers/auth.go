package controllers

import (
	"net/http"

	"github.com/angelmondragon/droptracker-backend/api/middleware"
	"github.com/angelmondragon/droptracker-backend/api/responses"
	"github.com/angelmondragon/droptracker-backend/api/validators"
	"github.com/angelmondragon/droptracker-backend/internal/auth"
	"github.com/angelmondragon/droptracker-backend/internal/users"
	pkgerrors "github.com/angelmondragon/droptracker-backend/pkg/errors"
	"github.com/angelmondragon/droptracker-backend/pkg/logger"
)

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AuthVerify echoes the identity the auth middleware resolved from the token.
func AuthVerify(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeMissingToken, "missing token"))
			return
		}

		responses.WriteSuccess(w, auth.VerifyResponse{
			Authenticated: true,
			User: &users.UserDTO{
				ID:       userID,
				Username: middleware.UsernameFromContext(r.Context()),
			},
		})
	}
}
