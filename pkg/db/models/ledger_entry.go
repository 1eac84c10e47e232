package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one acquired catalog item. SoldAt and SellPrice are set
// together with IsSold and never cleared.
type LedgerEntry struct {
	ID            int64               `gorm:"column:id;primaryKey;autoIncrement"`
	CatalogItemID int64               `gorm:"column:item_id;not null"`
	GroupMembers  *string             `gorm:"column:group_members"`
	Notes         *string             `gorm:"column:notes"`
	IsSold        bool                `gorm:"column:is_sold;not null;default:false"`
	SellPrice     decimal.NullDecimal `gorm:"column:sell_price;type:numeric(14,2)"`
	SellNotes     *string             `gorm:"column:sell_notes"`
	CreatedAt     time.Time           `gorm:"column:created_at"`
	SoldAt        *time.Time          `gorm:"column:sold_at"`
}

func (LedgerEntry) TableName() string { return "inventory" }

// LedgerEntryView is a ledger row joined with its catalog item for display.
type LedgerEntryView struct {
	ID              int64               `gorm:"column:id"`
	CatalogItemID   int64               `gorm:"column:item_id"`
	GroupMembers    *string             `gorm:"column:group_members"`
	Notes           *string             `gorm:"column:notes"`
	IsSold          bool                `gorm:"column:is_sold"`
	SellPrice       decimal.NullDecimal `gorm:"column:sell_price"`
	SellNotes       *string             `gorm:"column:sell_notes"`
	CreatedAt       time.Time           `gorm:"column:created_at"`
	SoldAt          *time.Time          `gorm:"column:sold_at"`
	ItemName        string              `gorm:"column:item_name"`
	ItemDescription *string             `gorm:"column:item_description"`
	ImageURL        *string             `gorm:"column:image_url"`
}
