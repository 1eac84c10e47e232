package users

import (
	"context"
	"time"

	"github.com/angelmondragon/droptracker-backend/internal/repo"
	"github.com/angelmondragon/droptracker-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a copy of the repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	user.CreatedAt = time.Now().UTC()
	if err := r.DB(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByUsername retrieves the user with exactly the provided username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CountByUsername returns 0 or 1.
func (r *Repository) CountByUsername(ctx context.Context, username string) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count, err
}

// UpdatePasswordHash replaces the stored hash, used when upgrading legacy hashes.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	return r.DB(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("password", hash).Error
}
