package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/droptracker-backend/internal/auth"
	pkgerrors "github.com/angelmondragon/droptracker-backend/pkg/errors"
	"github.com/angelmondragon/droptracker-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
)

type stubValidator struct {
	tokens map[string]auth.Identity
	seen   string
}

func (s *stubValidator) ValidateSession(token string) (*auth.Identity, error) {
	s.seen = token
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeMissingToken, "missing token")
	}
	identity, ok := s.tokens[token]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidToken, "invalid or expired token")
	}
	return &identity, nil
}

func newStubValidator() *stubValidator {
	return &stubValidator{tokens: map[string]auth.Identity{
		"good-token": {UserID: 7, Username: "admin"},
	}}
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(newStubValidator(), logger.Nop())(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "missing token")
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(newStubValidator(), nil)(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
	req.Header.Set("Authorization", "Bearer forged")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), string(pkgerrors.CodeInvalidToken))
}

func TestAuthBearerWithoutTokenIsMissing(t *testing.T) {
	validator := newStubValidator()
	handler := Auth(validator, nil)(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
	req.Header.Set("Authorization", "Bearer ")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "", validator.seen)
}

func TestAuthAllowsValidToken(t *testing.T) {
	var gotID int64
	var gotName string
	handler := Auth(newStubValidator(), logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = UserIDFromContext(r.Context())
		gotName = UsernameFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
	req.Header.Set("Authorization", "bearer good-token")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(7), gotID)
	assert.Equal(t, "admin", gotName)
}

func TestContextHelpersWithoutIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Zero(t, UserIDFromContext(req.Context()))
	assert.Empty(t, UsernameFromContext(req.Context()))
}
