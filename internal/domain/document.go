package domain

import (
	"time"

	"github.com/google/uuid"
)

type DocumentKind string

const (
	DocumentBrochure DocumentKind = "brochure"
	DocumentCatalog  DocumentKind = "catalog"
)

// GeneratedDocument es el registro de un PDF exportado con éxito. Sirve de
// ledger para el sweep de archivos huérfanos: un PDF en disco sin fila acá
// es un export que falló a mitad de camino.
type GeneratedDocument struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID   uuid.UUID    `gorm:"type:uuid;index" json:"business_id"`
	Kind         DocumentKind `gorm:"type:varchar(20)" json:"kind"`
	TemplateName string       `gorm:"size:60" json:"template_name"`
	Filename     string       `gorm:"size:255;uniqueIndex" json:"filename"`
	StoragePath  string       `gorm:"size:255" json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
}
