package auth

import (
	"time"

	"github.com/angelmondragon/droptracker-backend/internal/users"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=256"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *users.UserDTO `json:"user"`
}

// Session is a freshly issued bearer token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Identity is the caller recovered from a valid session token.
type Identity struct {
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

// VerifyResponse echoes the authenticated identity.
type VerifyResponse struct {
	Authenticated bool           `json:"authenticated"`
	User          *users.UserDTO `json:"user"`
}

// User returns the transport shape of the identity.
func (i Identity) User() *users.UserDTO {
	return &users.UserDTO{ID: i.UserID, Username: i.Username}
}
