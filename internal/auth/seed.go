package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/droptracker-backend/internal/users"
	"github.com/angelmondragon/droptracker-backend/pkg/config"
	"github.com/angelmondragon/droptracker-backend/pkg/db/models"
	"github.com/angelmondragon/droptracker-backend/pkg/logger"
	"github.com/angelmondragon/droptracker-backend/pkg/security"
)

type adminRepository interface {
	CountByUsername(ctx context.Context, username string) (int64, error)
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
}

// EnsureAdmin creates the bootstrap login when it does not exist yet. It
// reports whether a user was created.
func EnsureAdmin(ctx context.Context, repo adminRepository, admin config.AdminConfig, pwCfg config.PasswordConfig, logg *logger.Logger) (bool, error) {
	if repo == nil {
		return false, fmt.Errorf("user repository is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}

	username := strings.TrimSpace(admin.Username)
	if username == "" {
		return false, fmt.Errorf("admin username is required")
	}
	if admin.Password == "" {
		return false, fmt.Errorf("admin password is required")
	}

	ctx = logg.WithField(ctx, "username", username)
	if admin.UsesDefaultPassword() {
		logg.Warn(ctx, "auth.admin_default_password")
	}

	count, err := repo.CountByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("count admin user: %w", err)
	}
	if count > 0 {
		logg.Debug(ctx, "auth.admin_exists")
		return false, nil
	}

	hash, err := security.HashPassword(admin.Password, pwCfg)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	user, err := repo.Create(ctx, users.CreateUserDTO{Username: username, PasswordHash: hash})
	if err != nil {
		return false, fmt.Errorf("create admin user: %w", err)
	}

	logg.Info(logg.WithUserID(ctx, user.ID), "auth.admin_seeded")
	return true, nil
}
