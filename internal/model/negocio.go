package model

import (
	"time"

	"github.com/google/uuid"
)

// Negocio holds the business identity printed on tickets and traspaso PDFs.
// Single-row table in practice.
type Negocio struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Direccion string
	Telefono  string
	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralization.
func (Negocio) TableName() string { return "negocio" }
