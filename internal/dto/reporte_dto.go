package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReporteFilter is bound from query string of GET /v1/reportes/ventas.
type ReporteFilter struct {
	Desde    string `form:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta    string `form:"hasta" validate:"omitempty,datetime=2006-01-02"`
	Sucursal string `form:"sucursal"`
}

// ResumenVentasRow is one day+sucursal aggregate, scanned straight from the
// GROUP BY query.
type ResumenVentasRow struct {
	Fecha    time.Time       `json:"-"`
	Sucursal string          `json:"sucursal"`
	Tickets  int64           `json:"tickets"`
	Total    decimal.Decimal `json:"total"`
	Ganancia decimal.Decimal `json:"ganancia"`
}

type ResumenVentasItem struct {
	Fecha    string          `json:"fecha"`
	Sucursal string          `json:"sucursal"`
	Tickets  int64           `json:"tickets"`
	Total    decimal.Decimal `json:"total"`
	Ganancia decimal.Decimal `json:"ganancia"`
}

type ResumenVentasResponse struct {
	Desde string              `json:"desde"`
	Hasta string              `json:"hasta"`
	Data  []ResumenVentasItem `json:"data"`
}
