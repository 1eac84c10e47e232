package ledger

import (
	"time"

	"github.com/angelmondragon/droptracker-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// EntryDTO is a ledger entry joined with its catalog item.
type EntryDTO struct {
	ID              int64      `json:"id"`
	CatalogItemID   int64      `json:"item_id"`
	GroupMembers    *string    `json:"group_members"`
	Notes           *string    `json:"notes"`
	IsSold          bool       `json:"is_sold"`
	SellPrice       *float64   `json:"sell_price"`
	SellNotes       *string    `json:"sell_notes"`
	CreatedAt       time.Time  `json:"created_at"`
	SoldAt          *time.Time `json:"sold_at"`
	ItemName        string     `json:"item_name"`
	ItemDescription *string    `json:"item_description"`
	ImageURL        *string    `json:"image_url"`
}

// AddEntryInput holds the validated payload to record a drop.
type AddEntryInput struct {
	CatalogItemID int64
	GroupMembers  *string
	Notes         *string
}

// SellInput holds the validated payload to sell an entry. A nil SellPrice
// means the caller did not send one.
type SellInput struct {
	SellPrice *decimal.Decimal
	SellNotes *string
}

func FromView(v models.LedgerEntryView) EntryDTO {
	dto := EntryDTO{
		ID:              v.ID,
		CatalogItemID:   v.CatalogItemID,
		GroupMembers:    v.GroupMembers,
		Notes:           v.Notes,
		IsSold:          v.IsSold,
		SellNotes:       v.SellNotes,
		CreatedAt:       v.CreatedAt.UTC(),
		ItemName:        v.ItemName,
		ItemDescription: v.ItemDescription,
		ImageURL:        v.ImageURL,
	}
	if v.SellPrice.Valid {
		price := v.SellPrice.Decimal.InexactFloat64()
		dto.SellPrice = &price
	}
	if v.SoldAt != nil {
		soldAt := v.SoldAt.UTC()
		dto.SoldAt = &soldAt
	}
	return dto
}

// FromViews never returns nil so empty lists encode as [].
func FromViews(views []models.LedgerEntryView) []EntryDTO {
	out := make([]EntryDTO, 0, len(views))
	for _, v := range views {
		out = append(out, FromView(v))
	}
	return out
}
