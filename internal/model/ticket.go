package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ticket is one completed sale. Immutable once created.
// (Sucursal, NumeroSecuencia) is globally unique — concurrent sales for the
// same sucursal that race on the sequence are resolved by retrying against
// this index.
type Ticket struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// TicketID is the human-readable id: "{sucursal}-{secuencia 6 digitos}".
	TicketID        string `gorm:"uniqueIndex;not null"`
	Sucursal        string `gorm:"not null;uniqueIndex:idx_sucursal_secuencia"`
	NumeroSecuencia int    `gorm:"not null;uniqueIndex:idx_sucursal_secuencia"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GananciaTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago      string          `gorm:"type:varchar(20);not null"` // efectivo | tarjeta
	MontoPagado     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Cambio          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UsuarioID       uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt       time.Time

	Items   []TicketItem `gorm:"foreignKey:TicketID"`
	Usuario *Usuario     `gorm:"foreignKey:UsuarioID"`
}

// TicketItem is one sale line. Cantidad is in the unit sold (piezas o cajas);
// Piezas is the resolved piece count actually debited from stock.
type TicketItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre     string    `gorm:"not null"`
	Cantidad   int       `gorm:"not null"`
	TipoUnidad string    `gorm:"type:varchar(10);not null"` // piezas | cajas
	Piezas     int       `gorm:"not null"`
	PrecioUnit decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CostoUnit  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Ganancia   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// ComposeTicketID builds the human-readable id for a sucursal and sequence.
func ComposeTicketID(sucursal string, secuencia int) string {
	return fmt.Sprintf("%s-%06d", sucursal, secuencia)
}
