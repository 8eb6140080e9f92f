package repository

import (
	"context"

	"tiendapos/internal/model"

	"gorm.io/gorm"
)

type NegocioRepository interface {
	Get(ctx context.Context) (*model.Negocio, error)
	Upsert(ctx context.Context, n *model.Negocio) error
}

type negocioRepo struct{ db *gorm.DB }

func NewNegocioRepository(db *gorm.DB) NegocioRepository { return &negocioRepo{db: db} }

func (r *negocioRepo) Get(ctx context.Context) (*model.Negocio, error) {
	var n model.Negocio
	err := r.db.WithContext(ctx).First(&n).Error
	return &n, err
}

func (r *negocioRepo) Upsert(ctx context.Context, n *model.Negocio) error {
	var existing model.Negocio
	if err := r.db.WithContext(ctx).First(&existing).Error; err == nil {
		n.ID = existing.ID
		return r.db.WithContext(ctx).Save(n).Error
	}
	return r.db.WithContext(ctx).Create(n).Error
}
