package service

import (
	"context"
	"errors"
	"fmt"

	"tiendapos/internal/dto"
	"tiendapos/internal/infra"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrOrigenNoEncontrado   = errors.New("la ubicacion de origen no existe en el producto")
	ErrTraspasoNoEncontrado = errors.New("traspaso no encontrado")
)

type TraspasoService interface {
	CrearTraspaso(ctx context.Context, usuarioID uuid.UUID, req dto.CrearTraspasoRequest) (*dto.TraspasoResponse, error)
	ObtenerTraspaso(ctx context.Context, id uuid.UUID) (*dto.TraspasoResponse, error)
	ListTraspasos(ctx context.Context, page, limit int) (*dto.TraspasoListResponse, error)
}

// EvidenciaVerifier checks a transfer evidence reference against the image
// service. Satisfied by infra.ImageClient behind the circuit breaker.
type EvidenciaVerifier interface {
	VerifyEvidencia(ctx context.Context, ref string) error
}

type traspasoService struct {
	repo      repository.TraspasoRepository
	productos repository.ProductoRepository
	negocio   repository.NegocioRepository
	verifier  EvidenciaVerifier
	cb        *infra.CircuitBreaker
	pdfPath   string
}

func NewTraspasoService(
	repo repository.TraspasoRepository,
	productos repository.ProductoRepository,
	negocio repository.NegocioRepository,
	verifier EvidenciaVerifier,
	cb *infra.CircuitBreaker,
	pdfPath string,
) TraspasoService {
	return &traspasoService{
		repo:      repo,
		productos: productos,
		negocio:   negocio,
		verifier:  verifier,
		cb:        cb,
		pdfPath:   pdfPath,
	}
}

// ── CrearTraspaso ─────────────────────────────────────────────────────────────
// All lines are validated and applied inside ONE transaction: a failure on any
// line rolls back every previous line. Per line:
//   1. load the product (ErrProductoNoEncontrado)
//   2. find the origen entry (ErrOrigenNoEncontrado)
//   3. require origen.Cantidad >= cantidad (ErrStockInsuficiente)
//   4. debit origen, credit destino (appending a new entry when absent), prune
// The evidence reference is verified first through the image service; with the
// circuit open the check is skipped so a downed image service cannot block
// transfers.

func (s *traspasoService) CrearTraspaso(ctx context.Context, usuarioID uuid.UUID, req dto.CrearTraspasoRequest) (*dto.TraspasoResponse, error) {
	if s.verifier != nil {
		err := s.cb.Execute(func() error {
			return s.verifier.VerifyEvidencia(ctx, req.EvidenciaRef)
		})
		switch {
		case errors.Is(err, infra.ErrEvidenciaNoEncontrada):
			return nil, err
		case errors.Is(err, infra.ErrCircuitOpen):
			log.Warn().Str("evidencia", req.EvidenciaRef).Msg("traspaso: image service down, evidencia sin verificar")
		case err != nil:
			log.Warn().Err(err).Msg("traspaso: verificacion de evidencia fallida")
		}
	}

	traspaso := model.Traspaso{
		EvidenciaRef: req.EvidenciaRef,
		UsuarioID:    usuarioID,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, linea := range req.Lineas {
			pid, err := uuid.Parse(linea.ProductoID)
			if err != nil {
				return fmt.Errorf("producto_id inválido: %w", err)
			}
			p, err := s.productos.FindByIDTx(tx, pid)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrProductoNoEncontrado, linea.ProductoID)
			}

			origenIdx := -1
			for i, u := range p.Ubicaciones {
				if u.Nombre == linea.Origen {
					origenIdx = i
					break
				}
			}
			if origenIdx == -1 {
				return fmt.Errorf("%w: %s en %s", ErrOrigenNoEncontrado, linea.Origen, p.Nombre)
			}
			if p.Ubicaciones[origenIdx].Cantidad < linea.Cantidad {
				return fmt.Errorf("%w: %s en %s", ErrStockInsuficiente, p.Nombre, linea.Origen)
			}

			ubicaciones := p.Ubicaciones
			ubicaciones[origenIdx].Cantidad -= linea.Cantidad
			ubicaciones = model.CreditStock(ubicaciones, linea.Destino, linea.Cantidad)
			ubicaciones = model.PruneStock(ubicaciones)

			if err := s.productos.ReplaceUbicacionesTx(tx, pid, ubicaciones); err != nil {
				return err
			}

			traspaso.Lineas = append(traspaso.Lineas, model.TraspasoLinea{
				ProductoID: pid,
				Nombre:     p.Nombre,
				Origen:     linea.Origen,
				Destino:    linea.Destino,
				Cantidad:   linea.Cantidad,
			})
		}
		return s.repo.CreateTx(tx, &traspaso)
	})
	if txErr != nil {
		return nil, txErr
	}

	// PDF generation is post-commit: the traspaso is already durable and a
	// rendering failure must not undo the stock movement.
	nombreNegocio := "tiendapos"
	if s.negocio != nil {
		if n, err := s.negocio.Get(ctx); err == nil {
			nombreNegocio = n.Nombre
		}
	}
	if s.pdfPath != "" {
		pdfRef, err := infra.GenerateTraspasoPDF(&traspaso, nombreNegocio, s.pdfPath)
		if err != nil {
			log.Error().Err(err).Str("traspaso", traspaso.ID.String()).Msg("traspaso: pdf generation failed")
		} else {
			traspaso.PDFRef = pdfRef
			if err := s.repo.UpdatePDFRef(ctx, traspaso.ID, pdfRef); err != nil {
				log.Error().Err(err).Msg("traspaso: update pdf_ref failed")
			}
		}
	}

	return traspasoToResponse(&traspaso), nil
}

func (s *traspasoService) ObtenerTraspaso(ctx context.Context, id uuid.UUID) (*dto.TraspasoResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrTraspasoNoEncontrado
	}
	return traspasoToResponse(t), nil
}

func (s *traspasoService) ListTraspasos(ctx context.Context, page, limit int) (*dto.TraspasoListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	traspasos, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TraspasoResponse, 0, len(traspasos))
	for _, t := range traspasos {
		items = append(items, *traspasoToResponse(&t))
	}
	return &dto.TraspasoListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

func traspasoToResponse(t *model.Traspaso) *dto.TraspasoResponse {
	lineas := make([]dto.TraspasoLineaResponse, 0, len(t.Lineas))
	for _, l := range t.Lineas {
		lineas = append(lineas, dto.TraspasoLineaResponse{
			Producto: l.Nombre,
			Origen:   l.Origen,
			Destino:  l.Destino,
			Cantidad: l.Cantidad,
		})
	}
	return &dto.TraspasoResponse{
		ID:           t.ID.String(),
		Lineas:       lineas,
		EvidenciaRef: t.EvidenciaRef,
		PDFRef:       t.PDFRef,
		CreatedAt:    t.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
