package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is the catalog entry. Stock lives in Ubicaciones: one row per named
// location, ordered by Posicion. The order matters — sales consume stock in
// this order, so it is preserved across every mutation.
type Producto struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoCaja     string    `gorm:"uniqueIndex;not null"`
	CodigoProducto string    `gorm:"uniqueIndex;not null"`
	Nombre         string    `gorm:"index;not null"`
	// PiezasPorCaja converts box quantities to piece quantities at sale time.
	PiezasPorCaja int             `gorm:"not null;default:1"`
	Costo         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// Precio1 is the base price. Precio2..Precio5 apply when the sold quantity
	// reaches the matching CantidadMinN threshold.
	Precio1      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Precio2      decimal.Decimal `gorm:"type:decimal(10,2)"`
	CantidadMin2 int
	Precio3      decimal.Decimal `gorm:"type:decimal(10,2)"`
	CantidadMin3 int
	Precio4      decimal.Decimal `gorm:"type:decimal(10,2)"`
	CantidadMin4 int
	Precio5      decimal.Decimal `gorm:"type:decimal(10,2)"`
	CantidadMin5 int
	Categoria    string `gorm:"index"`
	Disponible   bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Ubicaciones []UbicacionStock `gorm:"foreignKey:ProductoID"`
}

// UbicacionStock is a (location name, quantity) pair owned by a Producto.
// The same location name appears across many products. Rows whose Cantidad
// reaches exactly 0 are pruned after a mutation.
type UbicacionStock struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre     string    `gorm:"not null"`
	Cantidad   int       `gorm:"not null"`
	// Posicion preserves insertion order — debits walk locations in this order.
	Posicion int `gorm:"not null"`
}

// TableName overrides GORM's default pluralization.
func (UbicacionStock) TableName() string { return "ubicaciones_stock" }

// PrecioParaCantidad selects the price tier for a sold quantity (in pieces):
// the highest tier whose minimum quantity is met, falling back to Precio1.
func (p *Producto) PrecioParaCantidad(cantidad int) decimal.Decimal {
	tiers := []struct {
		min    int
		precio decimal.Decimal
	}{
		{p.CantidadMin5, p.Precio5},
		{p.CantidadMin4, p.Precio4},
		{p.CantidadMin3, p.Precio3},
		{p.CantidadMin2, p.Precio2},
	}
	for _, t := range tiers {
		if t.min > 0 && cantidad >= t.min && !t.precio.IsZero() {
			return t.precio
		}
	}
	return p.Precio1
}
