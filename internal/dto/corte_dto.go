package dto

import "github.com/shopspring/decimal"

type CrearCorteRequest struct {
	Sucursal     string          `json:"sucursal"      validate:"required"`
	Fecha        string          `json:"fecha"         validate:"omitempty,datetime=2006-01-02"` // empty = today
	EfectivoReal decimal.Decimal `json:"efectivo_real" validate:"min=0"`
	TarjetaReal  decimal.Decimal `json:"tarjeta_real"  validate:"min=0"`
}

type CorteResponse struct {
	ID               string          `json:"id"`
	Sucursal         string          `json:"sucursal"`
	Fecha            string          `json:"fecha"`
	EfectivoEsperado decimal.Decimal `json:"efectivo_esperado"`
	TarjetaEsperada  decimal.Decimal `json:"tarjeta_esperada"`
	EfectivoReal     decimal.Decimal `json:"efectivo_real"`
	TarjetaReal      decimal.Decimal `json:"tarjeta_real"`
	NumTickets       int             `json:"num_tickets"`
	CreatedAt        string          `json:"created_at"`
}

type CorteListResponse struct {
	Data  []CorteResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
