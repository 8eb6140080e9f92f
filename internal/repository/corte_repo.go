package repository

import (
	"context"
	"time"

	"tiendapos/internal/model"

	"gorm.io/gorm"
)

type CorteRepository interface {
	Create(ctx context.Context, c *model.Corte) error
	FindByDia(ctx context.Context, sucursal string, fecha time.Time) (*model.Corte, error)
	List(ctx context.Context, sucursal string, page, limit int) ([]model.Corte, int64, error)
}

type corteRepo struct{ db *gorm.DB }

func NewCorteRepository(db *gorm.DB) CorteRepository { return &corteRepo{db: db} }

func (r *corteRepo) Create(ctx context.Context, c *model.Corte) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *corteRepo) FindByDia(ctx context.Context, sucursal string, fecha time.Time) (*model.Corte, error) {
	var c model.Corte
	err := r.db.WithContext(ctx).
		Where("sucursal = ? AND fecha = DATE(?)", sucursal, fecha).
		First(&c).Error
	return &c, err
}

func (r *corteRepo) List(ctx context.Context, sucursal string, page, limit int) ([]model.Corte, int64, error) {
	var out []model.Corte
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Corte{})
	if sucursal != "" {
		q = q.Where("sucursal = ?", sucursal)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("fecha DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&out).Error
	return out, total, err
}
