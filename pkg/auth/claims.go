package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionPayload captures the identity embedded into a session token.
type SessionPayload struct {
	UserID   int64
	Username string
	JTI      string
}

// SessionClaims represents the typed JWT issued to clients.
type SessionClaims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
