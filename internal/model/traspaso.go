package model

import (
	"time"

	"github.com/google/uuid"
)

// Traspaso is a batch movement of stock between locations, immutable once
// created. All lines are applied in one transaction — a failing line rolls
// back the whole batch.
type Traspaso struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// EvidenciaRef points at the photo in the image service; shared by the batch.
	EvidenciaRef string `gorm:"not null"`
	// PDFRef is the generated summary document, set after the batch commits.
	PDFRef    string
	UsuarioID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time

	Lineas []TraspasoLinea `gorm:"foreignKey:TraspasoID"`
}

type TraspasoLinea struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TraspasoID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre     string    `gorm:"not null"`
	Origen     string    `gorm:"not null"`
	Destino    string    `gorm:"not null"`
	Cantidad   int       `gorm:"not null"`
}

// TableName overrides GORM's default pluralization.
func (TraspasoLinea) TableName() string { return "traspaso_lineas" }
