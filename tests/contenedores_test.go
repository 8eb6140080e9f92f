package tests

import (
	"context"
	"testing"

	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"
	"tiendapos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stub ──────────────────────────────────────────────────────────────────────

type stubContenedorRepo struct {
	contenedores map[string]*model.Contenedor
	replaceCalls int
}

func newStubContenedorRepo() *stubContenedorRepo {
	return &stubContenedorRepo{contenedores: make(map[string]*model.Contenedor)}
}

func (r *stubContenedorRepo) Create(_ context.Context, c *model.Contenedor) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.contenedores[c.NumeroContenedor] = c
	return nil
}

func (r *stubContenedorRepo) FindByNumero(_ context.Context, numero string) (*model.Contenedor, error) {
	c, ok := r.contenedores[numero]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubContenedorRepo) FindByNumeroTx(_ *gorm.DB, numero string) (*model.Contenedor, error) {
	c, ok := r.contenedores[numero]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubContenedorRepo) List(_ context.Context, estado string) ([]model.Contenedor, error) {
	out := make([]model.Contenedor, 0, len(r.contenedores))
	for _, c := range r.contenedores {
		if estado == "" || c.Estado == estado {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubContenedorRepo) ReplaceTx(_ *gorm.DB, c *model.Contenedor) error {
	r.replaceCalls++
	r.contenedores[c.NumeroContenedor] = c
	return nil
}

func (r *stubContenedorRepo) DB() *gorm.DB { return nil }

var _ repository.ContenedorRepository = (*stubContenedorRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func contProducto(nombre, esperadas, recibidas string) dto.ContenedorProductoRequest {
	return dto.ContenedorProductoRequest{
		Nombre:         nombre,
		Codigo:         "COD-" + nombre,
		CajasEsperadas: esperadas,
		CajasRecibidas: recibidas,
	}
}

func seedContenedor(t *testing.T, svc service.ContenedorService, numero string) *dto.ContenedorResponse {
	t.Helper()
	resp, err := svc.Precargar(context.Background(), dto.PrecargarContenedorRequest{
		NumeroContenedor: numero,
		Productos: []dto.ContenedorProductoRequest{
			contProducto("Vasos", "10", ""),
			contProducto("Platos", "5", ""),
		},
	})
	require.NoError(t, err)
	return resp
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestPrecargarContenedor(t *testing.T) {
	repo := newStubContenedorRepo()
	svc := service.NewContenedorService(repo)

	resp := seedContenedor(t, svc, "CNT-001")

	assert.Equal(t, model.ContenedorPrecargado, resp.Estado)
	assert.Equal(t, 15, resp.TotalCajasEsperadas)
	assert.Equal(t, 0, resp.TotalCajasRecibidas)
	assert.False(t, resp.Completo)
}

func TestPrecargarContenedor_IgnoraRecibidas(t *testing.T) {
	// Received counts submitted at preload time are discarded.
	repo := newStubContenedorRepo()
	svc := service.NewContenedorService(repo)

	resp, err := svc.Precargar(context.Background(), dto.PrecargarContenedorRequest{
		NumeroContenedor: "CNT-002",
		Productos:        []dto.ContenedorProductoRequest{contProducto("Tazas", "8", "8")},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.TotalCajasRecibidas)
	assert.Equal(t, 0, resp.Productos[0].CajasRecibidas)
}

func TestPrecargarContenedor_Duplicado(t *testing.T) {
	repo := newStubContenedorRepo()
	svc := service.NewContenedorService(repo)
	seedContenedor(t, svc, "CNT-003")

	_, err := svc.Precargar(context.Background(), dto.PrecargarContenedorRequest{
		NumeroContenedor: "CNT-003",
		Productos:        []dto.ContenedorProductoRequest{contProducto("Ollas", "3", "")},
	})
	assert.ErrorIs(t, err, service.ErrContenedorDuplicado)
}

func TestPrecargarContenedor_CajasInvalidas(t *testing.T) {
	repo := newStubContenedorRepo()
	svc := service.NewContenedorService(repo)

	_, err := svc.Precargar(context.Background(), dto.PrecargarContenedorRequest{
		NumeroContenedor: "CNT-004",
		Productos:        []dto.ContenedorProductoRequest{contProducto("Sartenes", "muchas", "")},
	})
	assert.ErrorIs(t, err, service.ErrCajasInvalidas)
	assert.Empty(t, repo.contenedores, "nothing persists when a count fails to parse")
}

func TestRecibirContenedor(t *testing.T) {
	repo := newStubContenedorRepo()
	svc := service.NewContenedorService(repo)
	seedContenedor(t, svc, "CNT-005")

	resp, err := svc.Recibir(context.Background(), "CNT-005", dto.RecibirContenedorRequest{
		Productos: []dto.ContenedorProductoRequest{
			contProducto("Vasos", "10", "10"),
			contProducto("Platos", "5", "3"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, model.ContenedorRecibido, resp.Estado)
	assert.Equal(t, 15, resp.TotalCajasEsperadas)
	assert.Equal(t, 13, resp.TotalCajasRecibidas)
	assert.False(t, resp.Completo, "short-shipped container is not complete")
	assert.Equal(t, 1, repo.replaceCalls)
}

func TestRecibirContenedor_Completo(t *testing.T) {
	repo := newStubContenedorRepo()
	svc := service.NewContenedorService(repo)
	seedContenedor(t, svc, "CNT-006")

	resp, err := svc.Recibir(context.Background(), "CNT-006", dto.RecibirContenedorRequest{
		Productos: []dto.ContenedorProductoRequest{
			contProducto("Vasos", "10", "10"),
			contProducto("Platos", "5", "5"),
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Completo)
}

func TestRecibirContenedor_YaRecibido(t *testing.T) {
	repo := newStubContenedorRepo()
	svc := service.NewContenedorService(repo)
	seedContenedor(t, svc, "CNT-007")

	recibir := func() error {
		_, err := svc.Recibir(context.Background(), "CNT-007", dto.RecibirContenedorRequest{
			Productos: []dto.ContenedorProductoRequest{contProducto("Vasos", "10", "10")},
		})
		return err
	}
	require.NoError(t, recibir())
	assert.ErrorIs(t, recibir(), service.ErrContenedorYaRecibido)
}

// carreraContenedorRepo simulates a concurrent receive committing first: by
// the time the transaction acquires the row, estado already reads recibido.
type carreraContenedorRepo struct {
	*stubContenedorRepo
}

func (r *carreraContenedorRepo) FindByNumeroTx(_ *gorm.DB, numero string) (*model.Contenedor, error) {
	c, ok := r.contenedores[numero]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c.Estado = model.ContenedorRecibido
	return c, nil
}

func TestRecibirContenedor_CarreraConcurrente(t *testing.T) {
	// The estado guard reads the locked row inside the transaction, so the
	// losing receive sees the winner's estado and rejects without persisting.
	repo := &carreraContenedorRepo{stubContenedorRepo: newStubContenedorRepo()}
	svc := service.NewContenedorService(repo)
	seedContenedor(t, svc, "CNT-013")

	_, err := svc.Recibir(context.Background(), "CNT-013", dto.RecibirContenedorRequest{
		Productos: []dto.ContenedorProductoRequest{contProducto("Vasos", "10", "10")},
	})
	assert.ErrorIs(t, err, service.ErrContenedorYaRecibido)
	assert.Equal(t, 0, repo.replaceCalls)
}

func TestRecibirContenedor_EsperadasInvalidasRechazaTodo(t *testing.T) {
	// One bad expected count rejects the entire transition — the stored
	// container keeps its preloaded state.
	repo := newStubContenedorRepo()
	svc := service.NewContenedorService(repo)
	seedContenedor(t, svc, "CNT-008")

	_, err := svc.Recibir(context.Background(), "CNT-008", dto.RecibirContenedorRequest{
		Productos: []dto.ContenedorProductoRequest{
			contProducto("Vasos", "10", "10"),
			contProducto("Platos", "5x", "5"),
		},
	})
	assert.ErrorIs(t, err, service.ErrCajasInvalidas)
	assert.Equal(t, 0, repo.replaceCalls)

	c, _ := repo.FindByNumero(context.Background(), "CNT-008")
	assert.Equal(t, model.ContenedorPrecargado, c.Estado)
	assert.Equal(t, 0, c.TotalCajasRecibidas)
}

func TestRecibirContenedor_RecibidasInvalidasValenCero(t *testing.T) {
	repo := newStubContenedorRepo()
	svc := service.NewContenedorService(repo)
	seedContenedor(t, svc, "CNT-009")

	resp, err := svc.Recibir(context.Background(), "CNT-009", dto.RecibirContenedorRequest{
		Productos: []dto.ContenedorProductoRequest{
			contProducto("Vasos", "10", "n/a"),
			contProducto("Platos", "5", " 4 "),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Productos[0].CajasRecibidas)
	assert.Equal(t, 4, resp.Productos[1].CajasRecibidas)
	assert.Equal(t, 4, resp.TotalCajasRecibidas)
}

func TestRecibirContenedor_CorrigeEsperadas(t *testing.T) {
	// Receiving staff may correct the preloaded expected counts; totals are
	// recomputed from the submitted list.
	repo := newStubContenedorRepo()
	svc := service.NewContenedorService(repo)
	seedContenedor(t, svc, "CNT-010")

	resp, err := svc.Recibir(context.Background(), "CNT-010", dto.RecibirContenedorRequest{
		Productos: []dto.ContenedorProductoRequest{
			contProducto("Vasos", " 12 ", "12"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.TotalCajasEsperadas)
	assert.True(t, resp.Completo)
}

func TestObtenerContenedor_NoEncontrado(t *testing.T) {
	repo := newStubContenedorRepo()
	svc := service.NewContenedorService(repo)

	_, err := svc.Obtener(context.Background(), "CNT-999")
	assert.ErrorIs(t, err, service.ErrContenedorNoEncontrado)
}

func TestListarContenedores_PorEstado(t *testing.T) {
	repo := newStubContenedorRepo()
	svc := service.NewContenedorService(repo)
	seedContenedor(t, svc, "CNT-011")
	seedContenedor(t, svc, "CNT-012")
	_, err := svc.Recibir(context.Background(), "CNT-012", dto.RecibirContenedorRequest{
		Productos: []dto.ContenedorProductoRequest{contProducto("Vasos", "10", "10")},
	})
	require.NoError(t, err)

	precargados, err := svc.Listar(context.Background(), model.ContenedorPrecargado)
	require.NoError(t, err)
	assert.Len(t, precargados, 1)

	todos, err := svc.Listar(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}
