package reports

import (
	"context"

	"github.com/angelmondragon/droptracker-backend/internal/repo"
	"github.com/angelmondragon/droptracker-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Totals are the ledger-wide counters shown on the dashboard.
type Totals struct {
	Total     int64
	Sold      int64
	Unsold    int64
	SoldValue decimal.Decimal
}

const totalsSelect = `COUNT(*) AS total,
COALESCE(SUM(CASE WHEN is_sold THEN 1 ELSE 0 END), 0) AS sold,
COALESCE(SUM(CASE WHEN is_sold THEN 0 ELSE 1 END), 0) AS unsold,
COALESCE(SUM(CASE WHEN is_sold THEN sell_price ELSE 0 END), 0) AS sold_value`

// Repository runs the aggregate queries behind the dashboard.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Totals(ctx context.Context) (Totals, error) {
	var row Totals
	err := r.DB(ctx).Model(&models.LedgerEntry{}).Select(totalsSelect).Scan(&row).Error
	return row, err
}
