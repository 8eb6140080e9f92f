package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrContenedorNoEncontrado = errors.New("contenedor no encontrado")
	ErrContenedorDuplicado    = errors.New("ya existe un contenedor con ese numero")
	ErrContenedorYaRecibido   = errors.New("el contenedor ya fue recibido")
	// ErrCajasInvalidas rejects a receive submission whose expected box count
	// does not parse as an integer. The whole transition fails — no partial
	// product list is ever persisted.
	ErrCajasInvalidas = errors.New("cajas esperadas con valor no numerico")
)

type ContenedorService interface {
	Precargar(ctx context.Context, req dto.PrecargarContenedorRequest) (*dto.ContenedorResponse, error)
	Recibir(ctx context.Context, numero string, req dto.RecibirContenedorRequest) (*dto.ContenedorResponse, error)
	Obtener(ctx context.Context, numero string) (*dto.ContenedorResponse, error)
	Listar(ctx context.Context, estado string) ([]dto.ContenedorResponse, error)
}

type contenedorService struct {
	repo repository.ContenedorRepository
}

func NewContenedorService(repo repository.ContenedorRepository) ContenedorService {
	return &contenedorService{repo: repo}
}

// ── Precargar ─────────────────────────────────────────────────────────────────
// Creates the contenedor in estado "precargado" with the expected box counts
// and zero received.

func (s *contenedorService) Precargar(ctx context.Context, req dto.PrecargarContenedorRequest) (*dto.ContenedorResponse, error) {
	if _, err := s.repo.FindByNumero(ctx, req.NumeroContenedor); err == nil {
		return nil, ErrContenedorDuplicado
	}

	productos, totalEsperadas, _, err := parseProductos(req.Productos, false)
	if err != nil {
		return nil, err
	}
	// Received counts are ignored at preload time.
	for i := range productos {
		productos[i].CajasRecibidas = 0
	}

	c := &model.Contenedor{
		NumeroContenedor:    req.NumeroContenedor,
		Estado:              model.ContenedorPrecargado,
		TotalCajasEsperadas: totalEsperadas,
		TotalCajasRecibidas: 0,
		Productos:           productos,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return contenedorToResponse(c), nil
}

// ── Recibir ───────────────────────────────────────────────────────────────────
// Transition precargado → recibido. The caller submits the full product list;
// the server recomputes both totals as sums over that list. The submitted
// expected figures are trusted — receiving staff may legitimately correct the
// preload.

func (s *contenedorService) Recibir(ctx context.Context, numero string, req dto.RecibirContenedorRequest) (*dto.ContenedorResponse, error) {
	productos, totalEsperadas, totalRecibidas, err := parseProductos(req.Productos, true)
	if err != nil {
		return nil, err
	}

	// The estado guard runs inside the same transaction as the transition,
	// on a locked row: two concurrent receives serialize, and the loser sees
	// estado=recibido.
	var c *model.Contenedor
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err = s.repo.FindByNumeroTx(tx, numero)
		if err != nil {
			return ErrContenedorNoEncontrado
		}
		if c.Estado == model.ContenedorRecibido {
			return ErrContenedorYaRecibido
		}

		c.Productos = productos
		c.TotalCajasEsperadas = totalEsperadas
		c.TotalCajasRecibidas = totalRecibidas
		c.Estado = model.ContenedorRecibido
		return s.repo.ReplaceTx(tx, c)
	})
	if txErr != nil {
		return nil, txErr
	}
	return contenedorToResponse(c), nil
}

func (s *contenedorService) Obtener(ctx context.Context, numero string) (*dto.ContenedorResponse, error) {
	c, err := s.repo.FindByNumero(ctx, numero)
	if err != nil {
		return nil, ErrContenedorNoEncontrado
	}
	return contenedorToResponse(c), nil
}

func (s *contenedorService) Listar(ctx context.Context, estado string) ([]dto.ContenedorResponse, error) {
	contenedores, err := s.repo.List(ctx, estado)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContenedorResponse, 0, len(contenedores))
	for _, c := range contenedores {
		out = append(out, *contenedorToResponse(&c))
	}
	return out, nil
}

// parseProductos converts the submitted string counts. Expected boxes must
// parse as an integer or the whole submission is rejected; received boxes
// default to 0 when unparsable (withRecibidas=false skips them entirely).
func parseProductos(reqs []dto.ContenedorProductoRequest, withRecibidas bool) ([]model.ContenedorProducto, int, int, error) {
	productos := make([]model.ContenedorProducto, 0, len(reqs))
	totalEsperadas, totalRecibidas := 0, 0

	for _, pr := range reqs {
		esperadas, err := strconv.Atoi(strings.TrimSpace(pr.CajasEsperadas))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("%w: %s (%q)", ErrCajasInvalidas, pr.Nombre, pr.CajasEsperadas)
		}

		recibidas := 0
		if withRecibidas {
			if n, err := strconv.Atoi(strings.TrimSpace(pr.CajasRecibidas)); err == nil {
				recibidas = n
			}
		}

		totalEsperadas += esperadas
		totalRecibidas += recibidas
		productos = append(productos, model.ContenedorProducto{
			Nombre:         pr.Nombre,
			Codigo:         pr.Codigo,
			CajasEsperadas: esperadas,
			CajasRecibidas: recibidas,
		})
	}
	return productos, totalEsperadas, totalRecibidas, nil
}

func contenedorToResponse(c *model.Contenedor) *dto.ContenedorResponse {
	productos := make([]dto.ContenedorProductoResponse, 0, len(c.Productos))
	for _, p := range c.Productos {
		productos = append(productos, dto.ContenedorProductoResponse{
			Nombre:         p.Nombre,
			Codigo:         p.Codigo,
			CajasEsperadas: p.CajasEsperadas,
			CajasRecibidas: p.CajasRecibidas,
		})
	}
	return &dto.ContenedorResponse{
		ID:                  c.ID.String(),
		NumeroContenedor:    c.NumeroContenedor,
		Estado:              c.Estado,
		TotalCajasEsperadas: c.TotalCajasEsperadas,
		TotalCajasRecibidas: c.TotalCajasRecibidas,
		Completo:            c.Completo(),
		Productos:           productos,
		CreatedAt:           c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
