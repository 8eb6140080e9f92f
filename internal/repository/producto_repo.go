package repository

import (
	"context"

	"tiendapos/internal/dto"
	"tiendapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error
	Desactivar(ctx context.Context, id uuid.UUID) error

	// Transactional variants — callers must pass the tx instance.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	// ReplaceUbicacionesTx swaps a product's full location list inside tx,
	// keeping Posicion as the array order of the slice.
	ReplaceUbicacionesTx(tx *gorm.DB, productoID uuid.UUID, ubicaciones []model.UbicacionStock) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	for i := range p.Ubicaciones {
		p.Ubicaciones[i].Posicion = i
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("Ubicaciones", func(db *gorm.DB) *gorm.DB { return db.Order("posicion ASC") }).
		First(&p, id).Error
	return &p, err
}

// FindByCodigo resolves a product by either of its unique codes — box code or
// product code — so scanner flows can use one lookup.
func (r *productoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("Ubicaciones", func(db *gorm.DB) *gorm.DB { return db.Order("posicion ASC") }).
		Where("codigo_caja = ? OR codigo_producto = ?", codigo, codigo).
		First(&p).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	switch filter.Disponible {
	case "false":
		q = q.Where("disponible = false")
	case "all":
		// no filter
	default:
		q = q.Where("disponible = true")
	}

	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}
	if filter.Codigo != "" {
		q = q.Where("codigo_caja = ? OR codigo_producto = ?", filter.Codigo, filter.Codigo)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Ubicaciones", func(db *gorm.DB) *gorm.DB { return db.Order("posicion ASC") }).
		Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Omit("Ubicaciones").Save(p).Error
}

func (r *productoRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("disponible", false).Error
}

func (r *productoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := tx.Preload("Ubicaciones", func(db *gorm.DB) *gorm.DB { return db.Order("posicion ASC") }).
		First(&p, id).Error
	return &p, err
}

func (r *productoRepo) ReplaceUbicacionesTx(tx *gorm.DB, productoID uuid.UUID, ubicaciones []model.UbicacionStock) error {
	if err := tx.Where("producto_id = ?", productoID).Delete(&model.UbicacionStock{}).Error; err != nil {
		return err
	}
	if len(ubicaciones) == 0 {
		return nil
	}
	rows := make([]model.UbicacionStock, len(ubicaciones))
	for i, u := range ubicaciones {
		rows[i] = model.UbicacionStock{
			ProductoID: productoID,
			Nombre:     u.Nombre,
			Cantidad:   u.Cantidad,
			Posicion:   i,
		}
	}
	return tx.Create(&rows).Error
}
