package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/droptracker-backend/internal/repo"
	"github.com/angelmondragon/droptracker-backend/internal/users"
	pkgAuth "github.com/angelmondragon/droptracker-backend/pkg/auth"
	"github.com/angelmondragon/droptracker-backend/pkg/config"
	"github.com/angelmondragon/droptracker-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/droptracker-backend/pkg/errors"
	"github.com/angelmondragon/droptracker-backend/pkg/logger"
	"github.com/angelmondragon/droptracker-backend/pkg/security"
	"github.com/golang-jwt/jwt/v5"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	missingTokenMessage       = "missing token"
	invalidTokenMessage       = "invalid or expired token"
)

// dummyPassword is hashed once so unknown usernames cost the same as a wrong password.
const dummyPassword = "droptracker-timing-equaliser"

// Service defines the behavior needed by the auth controller and middleware.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	VerifyCredentials(ctx context.Context, username, password string) (*users.UserDTO, error)
	IssueSession(user *users.UserDTO, now time.Time) (*Session, error)
	ValidateSession(token string) (*Identity, error)
}

type service struct {
	users     userRepository
	jwtCfg    config.JWTConfig
	pwCfg     config.PasswordConfig
	dummyHash string
	now       func() time.Time
	logg      *logger.Logger
}

type userRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	Logger         *logger.Logger
	// Clock defaults to time.Now in UTC.
	Clock func() time.Time
}

// NewService constructs the credential and session service.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.JWTConfig.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	dummy, err := security.HashPassword(dummyPassword, params.PasswordConfig)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	clock := params.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		users:     params.UserRepo,
		jwtCfg:    params.JWTConfig,
		pwCfg:     params.PasswordConfig,
		dummyHash: dummy,
		now:       clock,
		logg:      logg,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.VerifyCredentials(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	sess, err := s.IssueSession(user, s.now())
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		User:      user,
	}, nil
}

func (s *service) VerifyCredentials(ctx context.Context, username, password string) (*users.UserDTO, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if repo.IsNotFound(err) {
			_, _ = security.VerifyPassword(password, s.dummyHash)
			return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidCredentials, invalidCredentialsMessage)
	}

	if security.NeedsRehash(user.PasswordHash) {
		s.upgradeHash(ctx, user, password)
	}
	return users.FromModel(user), nil
}

// upgradeHash swaps a legacy bcrypt hash for argon2id. Failures only log.
func (s *service) upgradeHash(ctx context.Context, user *models.User, password string) {
	ctx = s.logg.WithUserID(ctx, user.ID)
	hash, err := security.HashPassword(password, s.pwCfg)
	if err != nil {
		s.logg.Error(ctx, "auth.rehash_failed", err)
		return
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		s.logg.Error(ctx, "auth.rehash_failed", err)
		return
	}
	s.logg.Info(ctx, "auth.password_rehashed")
}

func (s *service) IssueSession(user *users.UserDTO, now time.Time) (*Session, error) {
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user is required")
	}
	token, expiresAt, err := pkgAuth.MintSessionToken(s.jwtCfg, now, pkgAuth.SessionPayload{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *service) ValidateSession(token string) (*Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeMissingToken, missingTokenMessage)
	}
	claims, err := pkgAuth.ParseSessionToken(s.jwtCfg, token, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInvalidToken, err, invalidTokenMessage)
	}
	identity := &Identity{UserID: claims.UserID, Username: claims.Username}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return identity, nil
}
