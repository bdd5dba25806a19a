package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID  uuid.UUID `gorm:"type:uuid;index;not null" json:"business_id"`
	ProductName string    `gorm:"size:180;not null" json:"product_name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(12,2);not null" json:"price"`
	Category    string    `gorm:"size:100" json:"category"`
	ImageURL    string    `gorm:"size:255" json:"image_url"`
	Images      []string  `gorm:"type:jsonb;serializer:json" json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
