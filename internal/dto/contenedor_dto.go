package dto

// ContenedorProductoRequest carries box counts as strings: the receiving UI
// submits raw form values. CajasEsperadas must parse to an integer or the
// whole submission is rejected; CajasRecibidas falls back to 0.
type ContenedorProductoRequest struct {
	Nombre         string `json:"nombre" validate:"required"`
	Codigo         string `json:"codigo" validate:"required"`
	CajasEsperadas string `json:"cajas_esperadas" validate:"required"`
	CajasRecibidas string `json:"cajas_recibidas"`
}

type PrecargarContenedorRequest struct {
	NumeroContenedor string                      `json:"numero_contenedor" validate:"required"`
	Productos        []ContenedorProductoRequest `json:"productos" validate:"required,min=1,dive"`
}

type RecibirContenedorRequest struct {
	Productos []ContenedorProductoRequest `json:"productos" validate:"required,min=1,dive"`
}

type ContenedorProductoResponse struct {
	Nombre         string `json:"nombre"`
	Codigo         string `json:"codigo"`
	CajasEsperadas int    `json:"cajas_esperadas"`
	CajasRecibidas int    `json:"cajas_recibidas"`
}

type ContenedorResponse struct {
	ID                  string                       `json:"id"`
	NumeroContenedor    string                       `json:"numero_contenedor"`
	Estado              string                       `json:"estado"`
	TotalCajasEsperadas int                          `json:"total_cajas_esperadas"`
	TotalCajasRecibidas int                          `json:"total_cajas_recibidas"`
	Completo            bool                         `json:"completo"`
	Productos           []ContenedorProductoResponse `json:"productos"`
	CreatedAt           string                       `json:"created_at"`
}
