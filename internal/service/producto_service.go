package service

import (
	"context"
	"errors"
	"fmt"

	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrCodigoDuplicado = errors.New("ya existe un producto con ese codigo")

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	// AgregarStock credits cantidad to one named location of the product,
	// appending the location when absent.
	AgregarStock(ctx context.Context, id uuid.UUID, req dto.AgregarStockRequest) (*dto.ProductoResponse, error)
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	p := &model.Producto{
		CodigoCaja:     req.CodigoCaja,
		CodigoProducto: req.CodigoProducto,
		Nombre:         req.Nombre,
		PiezasPorCaja:  req.PiezasPorCaja,
		Costo:          req.Costo,
		Precio1:        req.Precio1,
		Categoria:      req.Categoria,
		Disponible:     true,
	}
	applyTiers(p, req.Tiers)
	for i, u := range req.Ubicaciones {
		if u.Cantidad == 0 {
			continue
		}
		p.Ubicaciones = append(p.Ubicaciones, model.UbicacionStock{
			Nombre:   u.Nombre,
			Cantidad: u.Cantidad,
			Posicion: i,
		})
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCodigoDuplicado
		}
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}
	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		items = append(items, *productoToResponse(&p))
	}
	return &dto.ProductoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrProductoNoEncontrado
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.PiezasPorCaja != nil {
		p.PiezasPorCaja = *req.PiezasPorCaja
	}
	if req.Costo != nil {
		p.Costo = *req.Costo
	}
	if req.Precio1 != nil {
		p.Precio1 = *req.Precio1
	}
	if req.Tiers != nil {
		applyTiers(p, req.Tiers)
	}
	if req.Categoria != nil {
		p.Categoria = *req.Categoria
	}
	if req.Disponible != nil {
		p.Disponible = *req.Disponible
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrProductoNoEncontrado
	}
	return s.repo.Desactivar(ctx, id)
}

func (s *productoService) AgregarStock(ctx context.Context, id uuid.UUID, req dto.AgregarStockRequest) (*dto.ProductoResponse, error) {
	var updated *model.Producto
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrProductoNoEncontrado, id)
		}
		p.Ubicaciones = model.PruneStock(model.CreditStock(p.Ubicaciones, req.Ubicacion, req.Cantidad))
		if err := s.repo.ReplaceUbicacionesTx(tx, id, p.Ubicaciones); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return productoToResponse(updated), nil
}

// applyTiers copies up to four optional tiers into Precio2..Precio5, clearing
// the slots beyond what was submitted.
func applyTiers(p *model.Producto, tiers []dto.PrecioTier) {
	precios := []*decimal.Decimal{&p.Precio2, &p.Precio3, &p.Precio4, &p.Precio5}
	minimos := []*int{&p.CantidadMin2, &p.CantidadMin3, &p.CantidadMin4, &p.CantidadMin5}
	for i := range precios {
		if i < len(tiers) {
			*precios[i] = tiers[i].Precio
			*minimos[i] = tiers[i].CantidadMin
		} else {
			*precios[i] = decimal.Zero
			*minimos[i] = 0
		}
	}
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	ubicaciones := make([]dto.UbicacionResponse, 0, len(p.Ubicaciones))
	for _, u := range p.Ubicaciones {
		ubicaciones = append(ubicaciones, dto.UbicacionResponse{Nombre: u.Nombre, Cantidad: u.Cantidad})
	}

	var tiers []dto.PrecioTier
	if p.CantidadMin2 > 0 {
		tiers = append(tiers, dto.PrecioTier{Precio: p.Precio2, CantidadMin: p.CantidadMin2})
	}
	if p.CantidadMin3 > 0 {
		tiers = append(tiers, dto.PrecioTier{Precio: p.Precio3, CantidadMin: p.CantidadMin3})
	}
	if p.CantidadMin4 > 0 {
		tiers = append(tiers, dto.PrecioTier{Precio: p.Precio4, CantidadMin: p.CantidadMin4})
	}
	if p.CantidadMin5 > 0 {
		tiers = append(tiers, dto.PrecioTier{Precio: p.Precio5, CantidadMin: p.CantidadMin5})
	}

	return &dto.ProductoResponse{
		ID:             p.ID.String(),
		CodigoCaja:     p.CodigoCaja,
		CodigoProducto: p.CodigoProducto,
		Nombre:         p.Nombre,
		PiezasPorCaja:  p.PiezasPorCaja,
		Costo:          p.Costo,
		Precio1:        p.Precio1,
		Tiers:          tiers,
		Categoria:      p.Categoria,
		Disponible:     p.Disponible,
		StockTotal:     model.TotalStock(p.Ubicaciones),
		Ubicaciones:    ubicaciones,
	}
}
