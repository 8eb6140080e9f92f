package handler

import (
	"errors"
	"net/http"
	"reflect"

	"tiendapos/internal/apierror"
	"tiendapos/internal/infra"
	"tiendapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondServiceError maps domain sentinels onto HTTP status codes so the
// handlers stay thin. Unknown errors become a 500 without leaking detail.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductoNoEncontrado),
		errors.Is(err, service.ErrTicketNoEncontrado),
		errors.Is(err, service.ErrTraspasoNoEncontrado),
		errors.Is(err, service.ErrContenedorNoEncontrado),
		errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrCodigoDuplicado),
		errors.Is(err, service.ErrContenedorDuplicado),
		errors.Is(err, service.ErrContenedorYaRecibido),
		errors.Is(err, service.ErrCorteDuplicado),
		errors.Is(err, service.ErrSecuenciaDuplicada):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrStockInsuficiente),
		errors.Is(err, service.ErrPagoInsuficiente),
		errors.Is(err, service.ErrProductoNoDisponible),
		errors.Is(err, service.ErrOrigenNoEncontrado),
		errors.Is(err, service.ErrCajasInvalidas),
		errors.Is(err, infra.ErrEvidenciaNoEncontrada):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
