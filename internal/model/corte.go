package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Corte is the daily cash-cutoff per sucursal: expected cash/card computed by
// summing the day's tickets vs the amounts counted by staff. Read-mostly audit
// record.
type Corte struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Sucursal string    `gorm:"not null;index"`
	Fecha    time.Time `gorm:"type:date;not null;index"`

	EfectivoEsperado decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TarjetaEsperada  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EfectivoReal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TarjetaReal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	NumTickets       int             `gorm:"not null"`

	UsuarioID uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
}
