package catalog

import (
	"context"

	"github.com/angelmondragon/droptracker-backend/internal/repo"
	"github.com/angelmondragon/droptracker-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads and seeds the items table.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a copy of the repository bound to tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: r.Base.WithTx(tx)}
}

// List returns every item ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if err := r.DB(ctx).Order("name ASC").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Exists reports whether an item with id is present.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.CatalogItem{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).Model(&models.CatalogItem{}).Count(&count).Error
	return count, err
}

func (r *Repository) CreateBatch(ctx context.Context, items []models.CatalogItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.DB(ctx).Create(&items).Error
}
