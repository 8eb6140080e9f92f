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

type TraspasosHandler struct{ svc service.TraspasoService }

func NewTraspasosHandler(svc service.TraspasoService) *TraspasosHandler {
	return &TraspasosHandler{svc: svc}
}

// Crear godoc
// @Summary      Registrar traspaso
// @Description  Mueve stock entre ubicaciones para un lote de productos. El lote completo se aplica o se rechaza. Genera PDF de respaldo.
// @Tags         traspasos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearTraspasoRequest true "Lineas del traspaso y evidencia"
// @Success      201  {object} dto.TraspasoResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/traspasos [post]
func (h *TraspasosHandler) Crear(c *gin.Context) {
	var req dto.CrearTraspasoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CrearTraspaso(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TraspasosHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerTraspaso(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TraspasosHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	resp, err := h.svc.ListTraspasos(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar traspasos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
