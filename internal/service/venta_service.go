package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tiendapos/internal/dto"
	"tiendapos/internal/infra"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"
	"tiendapos/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductoNoEncontrado = errors.New("producto no encontrado")
	ErrProductoNoDisponible = errors.New("producto no disponible")
	ErrTicketNoEncontrado   = errors.New("ticket no encontrado")
	ErrStockInsuficiente    = errors.New("stock insuficiente")
	ErrPagoInsuficiente     = errors.New("el monto pagado es menor al total")
	// ErrSecuenciaDuplicada surfaces only after the sequence retry budget is
	// exhausted; a single collision is retried transparently.
	ErrSecuenciaDuplicada = errors.New("no se pudo asignar numero de ticket, reintente")
)

// maxSecuenciaIntentos bounds the retry loop for ticket sequence collisions.
const maxSecuenciaIntentos = 3

type VentaService interface {
	RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ObtenerTicket(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.TicketFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	tickets    repository.TicketRepository
	productos  repository.ProductoRepository
	publisher  infra.EventPublisher
	dispatcher *worker.Dispatcher
}

func NewVentaService(
	tickets repository.TicketRepository,
	productos repository.ProductoRepository,
	publisher infra.EventPublisher,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		tickets:    tickets,
		productos:  productos,
		publisher:  publisher,
		dispatcher: dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// One ACID transaction per sale:
//  1. Pre-flight (outside tx): resolve products, convert cajas→piezas, pick the
//     price tier, compute total/ganancia, validate payment.
//  2. TX: read MAX(numero_secuencia) for the sucursal, debit stock per item in
//     location order, prune empty locations, insert ticket+items.
//  3. On duplicate sequence (concurrent sale in the same sucursal) the whole
//     transaction is retried with a fresh read, up to maxSecuenciaIntentos.
//  4. Post-commit: publish newTicket event; enqueue receipt PDF job.
//
// Stock debits span all of a product's locations in their stored order — the
// sale's sucursal is where the ticket is issued, not a debit constraint.

func (s *ventaService) RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	type resolvedItem struct {
		productoID uuid.UUID
		nombre     string
		cantidad   int
		tipoUnidad string
		piezas     int
		precio     decimal.Decimal
		costo      decimal.Decimal
		total      decimal.Decimal
		ganancia   decimal.Decimal
	}

	var resolved []resolvedItem
	total := decimal.Zero
	gananciaTotal := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		p, err := s.productos.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrProductoNoEncontrado, item.ProductoID)
		}
		if !p.Disponible {
			return nil, fmt.Errorf("%w: %s", ErrProductoNoDisponible, p.Nombre)
		}

		piezas := item.Cantidad
		if item.TipoUnidad == "cajas" {
			piezas = item.Cantidad * p.PiezasPorCaja
		}
		if model.TotalStock(p.Ubicaciones) < piezas {
			return nil, fmt.Errorf("%w: %s", ErrStockInsuficiente, p.Nombre)
		}

		precio := p.PrecioParaCantidad(piezas)
		lineTotal := precio.Mul(decimal.NewFromInt(int64(piezas)))
		ganancia := precio.Sub(p.Costo).Mul(decimal.NewFromInt(int64(piezas)))

		total = total.Add(lineTotal)
		gananciaTotal = gananciaTotal.Add(ganancia)
		resolved = append(resolved, resolvedItem{
			productoID: pid,
			nombre:     p.Nombre,
			cantidad:   item.Cantidad,
			tipoUnidad: item.TipoUnidad,
			piezas:     piezas,
			precio:     precio,
			costo:      p.Costo,
			total:      lineTotal,
			ganancia:   ganancia,
		})
	}

	cambio := decimal.Zero
	if req.MetodoPago == "efectivo" {
		if req.MontoPagado.LessThan(total) {
			return nil, ErrPagoInsuficiente
		}
		cambio = req.MontoPagado.Sub(total)
	}

	var ticket model.Ticket
	var txErr error
	for intento := 0; intento < maxSecuenciaIntentos; intento++ {
		txErr = runTx(ctx, s.tickets.DB(), func(tx *gorm.DB) error {
			secuencia, err := s.tickets.MaxNumeroSecuenciaTx(tx, req.Sucursal)
			if err != nil {
				return err
			}
			secuencia++

			ticket = model.Ticket{
				TicketID:        model.ComposeTicketID(req.Sucursal, secuencia),
				Sucursal:        req.Sucursal,
				NumeroSecuencia: secuencia,
				Total:           total,
				GananciaTotal:   gananciaTotal,
				MetodoPago:      req.MetodoPago,
				MontoPagado:     req.MontoPagado,
				Cambio:          cambio,
				UsuarioID:       usuarioID,
			}
			for _, r := range resolved {
				ticket.Items = append(ticket.Items, model.TicketItem{
					ProductoID: r.productoID,
					Nombre:     r.nombre,
					Cantidad:   r.cantidad,
					TipoUnidad: r.tipoUnidad,
					Piezas:     r.piezas,
					PrecioUnit: r.precio,
					CostoUnit:  r.costo,
					Total:      r.total,
					Ganancia:   r.ganancia,
				})
			}

			// Debit stock inside the tx: re-read each product so concurrent
			// sales cannot consume the same pieces, then replace its ledger.
			for _, r := range resolved {
				p, err := s.productos.FindByIDTx(tx, r.productoID)
				if err != nil {
					return fmt.Errorf("%w: %s", ErrProductoNoEncontrado, r.nombre)
				}
				if model.TotalStock(p.Ubicaciones) < r.piezas {
					return fmt.Errorf("%w: %s", ErrStockInsuficiente, p.Nombre)
				}
				ubicaciones := model.PruneStock(model.DebitStock(p.Ubicaciones, r.piezas))
				if err := s.productos.ReplaceUbicacionesTx(tx, r.productoID, ubicaciones); err != nil {
					return err
				}
			}

			return s.tickets.CreateTx(tx, &ticket)
		})
		if txErr == nil || !errors.Is(txErr, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return nil, ErrSecuenciaDuplicada
		}
		return nil, txErr
	}

	if s.publisher != nil {
		s.publisher.PublishNewTicket(ctx, infra.NewTicketEvent{
			Date:     time.Now(),
			Profit:   gananciaTotal,
			Sales:    total,
			Location: req.Sucursal,
		})
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueTicketPDF(ctx, worker.TicketPDFPayload{TicketID: ticket.ID.String()})
	}

	resp := ventaToResponse(&ticket)
	return resp, nil
}

func (s *ventaService) ObtenerTicket(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	t, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, ErrTicketNoEncontrado
	}
	return ventaToResponse(t), nil
}

// ListVentas returns a paginated list of tickets filtered by date and sucursal.
// Default filter: today's tickets.
func (s *ventaService) ListVentas(ctx context.Context, filter dto.TicketFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	tickets, total, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, *ventaToResponse(&t))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func ventaToResponse(t *model.Ticket) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, dto.ItemVentaResponse{
			Producto:   item.Nombre,
			Cantidad:   item.Cantidad,
			TipoUnidad: item.TipoUnidad,
			Piezas:     item.Piezas,
			PrecioUnit: item.PrecioUnit,
			Total:      item.Total,
			Ganancia:   item.Ganancia,
		})
	}
	return &dto.VentaResponse{
		ID:            t.ID.String(),
		TicketID:      t.TicketID,
		Sucursal:      t.Sucursal,
		Secuencia:     t.NumeroSecuencia,
		Items:         items,
		Total:         t.Total,
		GananciaTotal: t.GananciaTotal,
		MetodoPago:    t.MetodoPago,
		MontoPagado:   t.MontoPagado,
		Cambio:        t.Cambio,
		CreatedAt:     t.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
