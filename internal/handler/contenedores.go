package handler

import (
	"net/http"

	"tiendapos/internal/apierror"
	"tiendapos/internal/dto"
	"tiendapos/internal/service"

	"github.com/gin-gonic/gin"
)

type ContenedoresHandler struct{ svc service.ContenedorService }

func NewContenedoresHandler(svc service.ContenedorService) *ContenedoresHandler {
	return &ContenedoresHandler{svc: svc}
}

// Precargar godoc
// @Summary      Precargar contenedor
// @Description  Registra el manifiesto de un contenedor antes de su llegada: numero y cajas esperadas por producto.
// @Tags         contenedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.PrecargarContenedorRequest true "Manifiesto"
// @Success      201  {object} dto.ContenedorResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/contenedores [post]
func (h *ContenedoresHandler) Precargar(c *gin.Context) {
	var req dto.PrecargarContenedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Precargar(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Recibir godoc
// @Summary      Recibir contenedor
// @Description  Captura las cajas recibidas contra el manifiesto precargado y marca el contenedor como recibido.
// @Tags         contenedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        numero path string true "Numero de contenedor"
// @Param        body body dto.RecibirContenedorRequest true "Cajas recibidas por producto"
// @Success      200  {object} dto.ContenedorResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/contenedores/{numero}/recibir [put]
func (h *ContenedoresHandler) Recibir(c *gin.Context) {
	var req dto.RecibirContenedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Recibir(c.Request.Context(), c.Param("numero"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContenedoresHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), c.Param("numero"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContenedoresHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("estado"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar contenedores"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
