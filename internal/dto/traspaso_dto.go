package dto

type TraspasoLineaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Origen     string `json:"origen"      validate:"required"`
	Destino    string `json:"destino"     validate:"required,nefield=Origen"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type CrearTraspasoRequest struct {
	Lineas       []TraspasoLineaRequest `json:"traspasos"     validate:"required,min=1,dive"`
	EvidenciaRef string                 `json:"evidencia_ref" validate:"required"`
}

type TraspasoLineaResponse struct {
	Producto string `json:"producto"`
	Origen   string `json:"origen"`
	Destino  string `json:"destino"`
	Cantidad int    `json:"cantidad"`
}

type TraspasoResponse struct {
	ID           string                  `json:"id"`
	Lineas       []TraspasoLineaResponse `json:"lineas"`
	EvidenciaRef string                  `json:"evidencia_ref"`
	PDFRef       string                  `json:"pdf_ref,omitempty"`
	CreatedAt    string                  `json:"created_at"`
}

type TraspasoListResponse struct {
	Data  []TraspasoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
