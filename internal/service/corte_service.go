package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"
	"tiendapos/internal/worker"

	"github.com/google/uuid"
)

var ErrCorteDuplicado = errors.New("ya existe un corte para esa sucursal y fecha")

type CorteService interface {
	CrearCorte(ctx context.Context, usuarioID uuid.UUID, req dto.CrearCorteRequest) (*dto.CorteResponse, error)
	ListCortes(ctx context.Context, sucursal string, page, limit int) (*dto.CorteListResponse, error)
}

type corteService struct {
	repo        repository.CorteRepository
	tickets     repository.TicketRepository
	dispatcher  *worker.Dispatcher
	reportEmail string
}

func NewCorteService(repo repository.CorteRepository, tickets repository.TicketRepository, dispatcher *worker.Dispatcher, reportEmail string) CorteService {
	return &corteService{repo: repo, tickets: tickets, dispatcher: dispatcher, reportEmail: reportEmail}
}

// CrearCorte computes the expected cash/card totals by summing the day's
// tickets for the sucursal (blind count: staff declares before seeing the
// expected figures) and persists the reconciliation record. The summary is
// mailed to the configured report address, fire-and-forget.
func (s *corteService) CrearCorte(ctx context.Context, usuarioID uuid.UUID, req dto.CrearCorteRequest) (*dto.CorteResponse, error) {
	fecha := time.Now()
	if req.Fecha != "" {
		parsed, err := time.Parse("2006-01-02", req.Fecha)
		if err != nil {
			return nil, fmt.Errorf("fecha inválida: %w", err)
		}
		fecha = parsed
	}

	if _, err := s.repo.FindByDia(ctx, req.Sucursal, fecha); err == nil {
		return nil, ErrCorteDuplicado
	}

	efectivo, tarjeta, numTickets, err := s.tickets.SumDia(ctx, req.Sucursal, fecha)
	if err != nil {
		return nil, err
	}

	corte := &model.Corte{
		Sucursal:         req.Sucursal,
		Fecha:            fecha,
		EfectivoEsperado: efectivo,
		TarjetaEsperada:  tarjeta,
		EfectivoReal:     req.EfectivoReal,
		TarjetaReal:      req.TarjetaReal,
		NumTickets:       int(numTickets),
		UsuarioID:        usuarioID,
	}
	if err := s.repo.Create(ctx, corte); err != nil {
		return nil, err
	}

	if s.dispatcher != nil && s.reportEmail != "" {
		body := fmt.Sprintf(
			"Corte %s %s\n\nTickets: %d\nEfectivo esperado: $%s\nEfectivo contado: $%s\nTarjeta esperada: $%s\nTarjeta contada: $%s\n",
			corte.Sucursal, corte.Fecha.Format("2006-01-02"), corte.NumTickets,
			corte.EfectivoEsperado.StringFixed(2), corte.EfectivoReal.StringFixed(2),
			corte.TarjetaEsperada.StringFixed(2), corte.TarjetaReal.StringFixed(2),
		)
		_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			ToEmail: s.reportEmail,
			Subject: fmt.Sprintf("Corte de caja %s — %s", corte.Sucursal, corte.Fecha.Format("02/01/2006")),
			Body:    body,
		})
	}

	return corteToResponse(corte), nil
}

func (s *corteService) ListCortes(ctx context.Context, sucursal string, page, limit int) (*dto.CorteListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	cortes, total, err := s.repo.List(ctx, sucursal, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CorteResponse, 0, len(cortes))
	for _, c := range cortes {
		items = append(items, *corteToResponse(&c))
	}
	return &dto.CorteListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

func corteToResponse(c *model.Corte) *dto.CorteResponse {
	return &dto.CorteResponse{
		ID:               c.ID.String(),
		Sucursal:         c.Sucursal,
		Fecha:            c.Fecha.Format("2006-01-02"),
		EfectivoEsperado: c.EfectivoEsperado,
		TarjetaEsperada:  c.TarjetaEsperada,
		EfectivoReal:     c.EfectivoReal,
		TarjetaReal:      c.TarjetaReal,
		NumTickets:       c.NumTickets,
		CreatedAt:        c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
