package handler

import (
	"fmt"
	"net/http"
	"time"

	"tiendapos/internal/apierror"
	"tiendapos/internal/dto"
	"tiendapos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Resumen godoc
// @Summary      Resumen de ventas
// @Description  Agrega tickets por dia y sucursal en un rango de fechas. Sin rango, los ultimos 30 dias.
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        desde    query string false "YYYY-MM-DD"
// @Param        hasta    query string false "YYYY-MM-DD"
// @Param        sucursal query string false "Filtrar por sucursal"
// @Success      200 {object} dto.ResumenVentasResponse
// @Router       /v1/reportes/ventas [get]
func (h *ReportesHandler) Resumen(c *gin.Context) {
	var filter dto.ReporteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("rango de fechas invalido"))
		return
	}
	resp, err := h.svc.ResumenVentas(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el resumen"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarExcel streams the same aggregation as an xlsx download.
func (h *ReportesHandler) ExportarExcel(c *gin.Context) {
	var filter dto.ReporteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("rango de fechas invalido"))
		return
	}

	filename := fmt.Sprintf("ventas_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := h.svc.ExportarExcel(c.Request.Context(), filter, c.Writer); err != nil {
		// Headers may already be out; log via gin error chain.
		_ = c.Error(err)
	}
}
