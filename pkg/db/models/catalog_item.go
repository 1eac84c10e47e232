package models

import "time"

// CatalogItem is a reference definition of an item that can drop.
type CatalogItem struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	ImageURL    *string   `gorm:"column:image_url"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (CatalogItem) TableName() string { return "items" }
