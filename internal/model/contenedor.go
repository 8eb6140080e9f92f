package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados de un contenedor.
// "completado" is declared in the schema but no flow transitions to it —
// completeness is the derived Completo() classification, not an estado.
const (
	ContenedorPrecargado = "precargado"
	ContenedorRecibido   = "recibido"
	ContenedorCompletado = "completado"
)

// Contenedor tracks an incoming shipment from preload (expected contents)
// through receiving (actual contents).
type Contenedor struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroContenedor string    `gorm:"uniqueIndex;not null"`
	Estado           string    `gorm:"type:varchar(20);not null;default:'precargado'"`
	// Totals are recomputed server-side on every receive submission as the sum
	// of the per-product fields.
	TotalCajasEsperadas int `gorm:"not null;default:0"`
	TotalCajasRecibidas int `gorm:"not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Productos []ContenedorProducto `gorm:"foreignKey:ContenedorID"`
}

type ContenedorProducto struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ContenedorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre         string    `gorm:"not null"`
	Codigo         string    `gorm:"not null"`
	CajasEsperadas int       `gorm:"not null"`
	CajasRecibidas int       `gorm:"not null;default:0"`
}

// TableName overrides GORM's default pluralization.
func (Contenedor) TableName() string { return "contenedores" }

func (ContenedorProducto) TableName() string { return "contenedor_productos" }

// Completo reports whether every expected box was received.
// Used for UI classification only — it does not change Estado.
func (c *Contenedor) Completo() bool {
	return c.TotalCajasEsperadas == c.TotalCajasRecibidas
}
