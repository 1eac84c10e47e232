package ledger

import (
	"context"
	"time"

	"github.com/angelmondragon/droptracker-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository manages persistence for ledger entries.
type Repository interface {
	Create(ctx context.Context, entry *models.LedgerEntry) error
	Get(ctx context.Context, id int64) (*models.LedgerEntryView, error)
	List(ctx context.Context, filter ListFilter) ([]models.LedgerEntryView, error)
	Exists(ctx context.Context, id int64) (bool, error)
	MarkSold(ctx context.Context, id int64, sale Sale) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ListFilter narrows List. Lower bounds are inclusive, upper bounds exclusive.
type ListFilter struct {
	CreatedFrom   *time.Time
	CreatedBefore *time.Time
	SoldOnly      bool
	SoldFrom      *time.Time
	SoldBefore    *time.Time
	// OrderBySold sorts by sold_at instead of created_at, newest first.
	OrderBySold bool
	Limit       int
}

// Sale is the data recorded when an entry is sold.
type Sale struct {
	Price decimal.Decimal
	Notes *string
	At    time.Time
}

const entryColumns = `inv.id, inv.item_id, inv.group_members, inv.notes, inv.is_sold,
inv.sell_price, inv.sell_notes, inv.created_at, inv.sold_at,
i.name AS item_name, i.description AS item_description, i.image_url`

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("inventory AS inv").
		Select(entryColumns).
		Joins("JOIN items i ON inv.item_id = i.id")
}

func (r *repository) Create(ctx context.Context, entry *models.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) Get(ctx context.Context, id int64) (*models.LedgerEntryView, error) {
	var view models.LedgerEntryView
	if err := r.joined(ctx).Where("inv.id = ?", id).Take(&view).Error; err != nil {
		return nil, err
	}
	return &view, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.LedgerEntryView, error) {
	q := r.joined(ctx)
	if filter.CreatedFrom != nil {
		q = q.Where("inv.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedBefore != nil {
		q = q.Where("inv.created_at < ?", *filter.CreatedBefore)
	}
	if filter.SoldOnly {
		q = q.Where("inv.is_sold = ? AND inv.sold_at IS NOT NULL", true)
	}
	if filter.SoldFrom != nil {
		q = q.Where("inv.sold_at >= ?", *filter.SoldFrom)
	}
	if filter.SoldBefore != nil {
		q = q.Where("inv.sold_at < ?", *filter.SoldBefore)
	}
	if filter.OrderBySold {
		q = q.Order("inv.sold_at DESC")
	} else {
		q = q.Order("inv.created_at DESC")
	}
	q = q.Order("inv.id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	views := []models.LedgerEntryView{}
	if err := q.Find(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.LedgerEntry{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkSold flips an unsold entry to sold. It reports false when no unsold row
// with id exists.
func (r *repository) MarkSold(ctx context.Context, id int64, sale Sale) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.LedgerEntry{}).
		Where("id = ? AND is_sold = ?", id, false).
		Updates(map[string]any{
			"is_sold":    true,
			"sell_price": sale.Price,
			"sell_notes": sale.Notes,
			"sold_at":    sale.At,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.LedgerEntry{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
