package repository

import (
	"context"

	"tiendapos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContenedorRepository interface {
	Create(ctx context.Context, c *model.Contenedor) error
	FindByNumero(ctx context.Context, numero string) (*model.Contenedor, error)
	// FindByNumeroTx loads the contenedor inside tx with a row lock, so
	// concurrent receive attempts serialize on the estado check.
	FindByNumeroTx(tx *gorm.DB, numero string) (*model.Contenedor, error)
	List(ctx context.Context, estado string) ([]model.Contenedor, error)
	// ReplaceTx persists a receive submission: the contenedor row plus its full
	// product list, atomically.
	ReplaceTx(tx *gorm.DB, c *model.Contenedor) error
	DB() *gorm.DB
}

type contenedorRepo struct{ db *gorm.DB }

func NewContenedorRepository(db *gorm.DB) ContenedorRepository { return &contenedorRepo{db: db} }

func (r *contenedorRepo) DB() *gorm.DB { return r.db }

func (r *contenedorRepo) Create(ctx context.Context, c *model.Contenedor) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *contenedorRepo) FindByNumero(ctx context.Context, numero string) (*model.Contenedor, error) {
	var c model.Contenedor
	err := r.db.WithContext(ctx).Preload("Productos").
		Where("numero_contenedor = ?", numero).First(&c).Error
	return &c, err
}

func (r *contenedorRepo) FindByNumeroTx(tx *gorm.DB, numero string) (*model.Contenedor, error) {
	var c model.Contenedor
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Productos").
		Where("numero_contenedor = ?", numero).First(&c).Error
	return &c, err
}

func (r *contenedorRepo) List(ctx context.Context, estado string) ([]model.Contenedor, error) {
	var out []model.Contenedor
	q := r.db.WithContext(ctx).Preload("Productos").Order("created_at DESC")
	if estado != "" && estado != "all" {
		q = q.Where("estado = ?", estado)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *contenedorRepo) ReplaceTx(tx *gorm.DB, c *model.Contenedor) error {
	if err := tx.Where("contenedor_id = ?", c.ID).Delete(&model.ContenedorProducto{}).Error; err != nil {
		return err
	}
	for i := range c.Productos {
		c.Productos[i].ContenedorID = c.ID
	}
	if len(c.Productos) > 0 {
		if err := tx.Create(&c.Productos).Error; err != nil {
			return err
		}
	}
	return tx.Omit("Productos").Save(c).Error
}
