package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTemplate   = "modern"
	DefaultBrandColor = "#667eea"
)

// Service es un bloque {nombre, descripción} dentro del perfil.
type Service struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Business struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID         `gorm:"type:uuid;index" json:"user_id"`
	BusinessName string            `gorm:"size:180;not null" json:"business_name"`
	Industry     string            `gorm:"size:100" json:"industry"`
	Tagline      string            `gorm:"size:255" json:"tagline"`
	Description  string            `gorm:"type:text" json:"description"`
	Services     []Service         `gorm:"type:jsonb;serializer:json" json:"services"`
	AIAbout      string            `gorm:"type:text" json:"ai_about"`
	AIPills      []string          `gorm:"type:jsonb;serializer:json" json:"ai_pills"`
	AIStats      map[string]string `gorm:"type:jsonb;serializer:json" json:"ai_stats"`
	Email        string            `gorm:"size:140" json:"email"`
	Phone        string            `gorm:"size:50" json:"phone"`
	Address      string            `gorm:"size:255" json:"address"`
	LinkedinURL  string            `gorm:"size:255" json:"linkedin_url"`
	InstagramURL string            `gorm:"size:255" json:"instagram_url"`
	FacebookURL  string            `gorm:"size:255" json:"facebook_url"`
	BrandColor   string            `gorm:"size:20" json:"brand_color"`
	LogoURL      string            `gorm:"size:255" json:"logo_url"`
	HeroImageURL string            `gorm:"size:255" json:"hero_image_url"`
	TemplateName string            `gorm:"size:60" json:"template_name"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Normalize aplica los defaults que el perfil siempre tiene que tener.
func (b *Business) Normalize() {
	if b.TemplateName == "" {
		b.TemplateName = DefaultTemplate
	}
	if b.BrandColor == "" {
		b.BrandColor = DefaultBrandColor
	}
}
