package dto

import "github.com/shopspring/decimal"

// ProductoFilter is bound from query string of GET /v1/productos.
type ProductoFilter struct {
	Nombre     string `form:"nombre"`
	Categoria  string `form:"categoria"`
	Codigo     string `form:"codigo"`
	Disponible string `form:"disponible"` // "false" | "all" | default activos
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type UbicacionRequest struct {
	Nombre   string `json:"nombre"   validate:"required"`
	Cantidad int    `json:"cantidad" validate:"min=0"`
}

type PrecioTier struct {
	Precio      decimal.Decimal `json:"precio"       validate:"min=0"`
	CantidadMin int             `json:"cantidad_min" validate:"min=0"`
}

type CrearProductoRequest struct {
	CodigoCaja     string          `json:"codigo_caja"     validate:"required"`
	CodigoProducto string          `json:"codigo_producto" validate:"required"`
	Nombre         string          `json:"nombre"          validate:"required,min=2"`
	PiezasPorCaja  int             `json:"piezas_por_caja" validate:"required,min=1"`
	Costo          decimal.Decimal `json:"costo"           validate:"required"`
	Precio1        decimal.Decimal `json:"precio1"         validate:"required"`
	// Tiers 2..5 are optional; a tier applies when cantidad_min > 0.
	Tiers       []PrecioTier       `json:"tiers"       validate:"max=4,dive"`
	Categoria   string             `json:"categoria"`
	Ubicaciones []UbicacionRequest `json:"ubicaciones" validate:"dive"`
}

type ActualizarProductoRequest struct {
	Nombre        *string          `json:"nombre"          validate:"omitempty,min=2"`
	PiezasPorCaja *int             `json:"piezas_por_caja" validate:"omitempty,min=1"`
	Costo         *decimal.Decimal `json:"costo"`
	Precio1       *decimal.Decimal `json:"precio1"`
	Tiers         []PrecioTier     `json:"tiers"           validate:"omitempty,max=4,dive"`
	Categoria     *string          `json:"categoria"`
	Disponible    *bool            `json:"disponible"`
}

// AgregarStockRequest credits quantity to one named location of a product.
type AgregarStockRequest struct {
	Ubicacion string `json:"ubicacion" validate:"required"`
	Cantidad  int    `json:"cantidad"  validate:"required,min=1"`
}

type UbicacionResponse struct {
	Nombre   string `json:"nombre"`
	Cantidad int    `json:"cantidad"`
}

type ProductoResponse struct {
	ID             string              `json:"id"`
	CodigoCaja     string              `json:"codigo_caja"`
	CodigoProducto string              `json:"codigo_producto"`
	Nombre         string              `json:"nombre"`
	PiezasPorCaja  int                 `json:"piezas_por_caja"`
	Costo          decimal.Decimal     `json:"costo"`
	Precio1        decimal.Decimal     `json:"precio1"`
	Tiers          []PrecioTier        `json:"tiers,omitempty"`
	Categoria      string              `json:"categoria"`
	Disponible     bool                `json:"disponible"`
	StockTotal     int                 `json:"stock_total"`
	Ubicaciones    []UbicacionResponse `json:"ubicaciones"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
