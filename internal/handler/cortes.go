package handler

import (
	"net/http"
	"strconv"

	"tiendapos/internal/apierror"
	"tiendapos/internal/dto"
	"tiendapos/internal/middleware"
	"tiendapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CortesHandler struct{ svc service.CorteService }

func NewCortesHandler(svc service.CorteService) *CortesHandler { return &CortesHandler{svc: svc} }

// Crear godoc
// @Summary      Corte de caja
// @Description  Cierra el dia de una sucursal: compara efectivo y tarjeta declarados contra lo vendido y envia el resumen por correo.
// @Tags         cortes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearCorteRequest true "Montos declarados"
// @Success      201  {object} dto.CorteResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/cortes [post]
func (h *CortesHandler) Crear(c *gin.Context) {
	var req dto.CrearCorteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CrearCorte(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CortesHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	resp, err := h.svc.ListCortes(c.Request.Context(), c.Query("sucursal"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar cortes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
