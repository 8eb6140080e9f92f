package dto

import "github.com/shopspring/decimal"

// TicketFilter is bound from query string of GET /v1/ventas.
type TicketFilter struct {
	Fecha    string `form:"fecha"` // YYYY-MM-DD; empty = today
	Sucursal string `form:"sucursal"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
	TipoUnidad string `json:"tipo_unidad" validate:"required,oneof=piezas cajas"`
}

type RegistrarVentaRequest struct {
	Sucursal    string             `json:"sucursal"     validate:"required"`
	Items       []ItemVentaRequest `json:"items"        validate:"required,min=1,dive"`
	MetodoPago  string             `json:"metodo_pago"  validate:"required,oneof=efectivo tarjeta"`
	// Only meaningful for efectivo; the service enforces MontoPagado >= Total
	// there. Card payments may send 0.
	MontoPagado decimal.Decimal    `json:"monto_pagado" validate:"min=0"`
}

type ItemVentaResponse struct {
	Producto   string          `json:"producto"`
	Cantidad   int             `json:"cantidad"`
	TipoUnidad string          `json:"tipo_unidad"`
	Piezas     int             `json:"piezas"`
	PrecioUnit decimal.Decimal `json:"precio_unitario"`
	Total      decimal.Decimal `json:"total"`
	Ganancia   decimal.Decimal `json:"ganancia"`
}

type VentaResponse struct {
	ID            string              `json:"id"`
	TicketID      string              `json:"ticket_id"`
	Sucursal      string              `json:"sucursal"`
	Secuencia     int                 `json:"numero_secuencia"`
	Items         []ItemVentaResponse `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	GananciaTotal decimal.Decimal     `json:"ganancia_total"`
	MetodoPago    string              `json:"metodo_pago"`
	MontoPagado   decimal.Decimal     `json:"monto_pagado"`
	Cambio        decimal.Decimal     `json:"cambio"`
	CreatedAt     string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
