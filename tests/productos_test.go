package tests

import (
	"context"
	"testing"

	"tiendapos/internal/dto"
	"tiendapos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearProducto(t *testing.T) {
	repo := newStubProductoRepo()
	svc := service.NewProductoService(repo)

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		CodigoCaja:     "7500000000011",
		CodigoProducto: "7500000000012",
		Nombre:         "Atun en lata",
		PiezasPorCaja:  24,
		Costo:          decimal.NewFromInt(10),
		Precio1:        decimal.NewFromInt(18),
		Tiers: []dto.PrecioTier{
			{Precio: decimal.NewFromInt(16), CantidadMin: 12},
			{Precio: decimal.NewFromInt(15), CantidadMin: 24},
		},
		Categoria: "abarrotes",
		Ubicaciones: []dto.UbicacionRequest{
			{Nombre: "Bodega", Cantidad: 48},
			{Nombre: "Piso", Cantidad: 0}, // empty locations are dropped
			{Nombre: "Mostrador", Cantidad: 6},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Disponible)
	assert.Equal(t, 54, resp.StockTotal)
	require.Len(t, resp.Ubicaciones, 2)
	assert.Equal(t, "Bodega", resp.Ubicaciones[0].Nombre)
	assert.Equal(t, "Mostrador", resp.Ubicaciones[1].Nombre)
	require.Len(t, resp.Tiers, 2)
	assert.Equal(t, 12, resp.Tiers[0].CantidadMin)
}

func TestObtenerPorCodigo_AmbosCodigos(t *testing.T) {
	repo := newStubProductoRepo()
	svc := service.NewProductoService(repo)
	p := seedProducto(repo, "Cereal", ub("Bodega", 5))

	porCaja, err := svc.ObtenerPorCodigo(context.Background(), p.CodigoCaja)
	require.NoError(t, err)
	porPieza, err := svc.ObtenerPorCodigo(context.Background(), p.CodigoProducto)
	require.NoError(t, err)
	assert.Equal(t, porCaja.ID, porPieza.ID)
}

func TestObtenerPorCodigo_NoEncontrado(t *testing.T) {
	repo := newStubProductoRepo()
	svc := service.NewProductoService(repo)

	_, err := svc.ObtenerPorCodigo(context.Background(), "0000000000000")
	assert.ErrorIs(t, err, service.ErrProductoNoEncontrado)
}

func TestActualizarProducto_ReemplazaTiers(t *testing.T) {
	repo := newStubProductoRepo()
	svc := service.NewProductoService(repo)
	p := seedProducto(repo, "Yogurt", ub("Bodega", 5))
	p.Precio2 = decimal.NewFromInt(40)
	p.CantidadMin2 = 6
	p.Precio3 = decimal.NewFromInt(35)
	p.CantidadMin3 = 12

	// Submitting a single tier clears the slots beyond it.
	resp, err := svc.Actualizar(context.Background(), p.ID, dto.ActualizarProductoRequest{
		Tiers: []dto.PrecioTier{{Precio: decimal.NewFromInt(42), CantidadMin: 10}},
	})
	require.NoError(t, err)

	require.Len(t, resp.Tiers, 1)
	assert.Equal(t, "42", resp.Tiers[0].Precio.String())
	assert.Equal(t, 0, p.CantidadMin3)
}

func TestAgregarStock_UbicacionExistente(t *testing.T) {
	repo := newStubProductoRepo()
	svc := service.NewProductoService(repo)
	p := seedProducto(repo, "Mayonesa", ub("Bodega", 5), ub("Piso", 2))

	resp, err := svc.AgregarStock(context.Background(), p.ID, dto.AgregarStockRequest{
		Ubicacion: "Bodega",
		Cantidad:  10,
	})
	require.NoError(t, err)

	assert.Equal(t, 17, resp.StockTotal)
	assert.Equal(t, 15, resp.Ubicaciones[0].Cantidad)
	assert.Equal(t, "Piso", resp.Ubicaciones[1].Nombre, "location order is preserved")
}

func TestAgregarStock_UbicacionNueva(t *testing.T) {
	repo := newStubProductoRepo()
	svc := service.NewProductoService(repo)
	p := seedProducto(repo, "Mostaza", ub("Bodega", 5))

	resp, err := svc.AgregarStock(context.Background(), p.ID, dto.AgregarStockRequest{
		Ubicacion: "Refrigerador",
		Cantidad:  3,
	})
	require.NoError(t, err)

	require.Len(t, resp.Ubicaciones, 2)
	assert.Equal(t, "Refrigerador", resp.Ubicaciones[1].Nombre)
	assert.Equal(t, 3, resp.Ubicaciones[1].Cantidad)
}

func TestAgregarStock_ProductoInexistente(t *testing.T) {
	repo := newStubProductoRepo()
	svc := service.NewProductoService(repo)

	_, err := svc.AgregarStock(context.Background(), uuid.New(), dto.AgregarStockRequest{
		Ubicacion: "Bodega",
		Cantidad:  1,
	})
	assert.ErrorIs(t, err, service.ErrProductoNoEncontrado)
}

func TestDesactivarProducto(t *testing.T) {
	repo := newStubProductoRepo()
	svc := service.NewProductoService(repo)
	p := seedProducto(repo, "Temporal", ub("Bodega", 1))

	require.NoError(t, svc.Desactivar(context.Background(), p.ID))
	assert.False(t, p.Disponible)

	// Deactivated products stay queryable by id for ticket history.
	resp, err := svc.ObtenerPorID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.False(t, resp.Disponible)
}
