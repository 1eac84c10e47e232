package catalog

import (
	"time"

	"github.com/angelmondragon/droptracker-backend/pkg/db/models"
)

// ItemDTO is the public shape of a catalog item.
type ItemDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromModel(m models.CatalogItem) ItemDTO {
	return ItemDTO{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
	}
}
