package repository

import (
	"context"

	"tiendapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TraspasoRepository interface {
	CreateTx(tx *gorm.DB, t *model.Traspaso) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Traspaso, error)
	List(ctx context.Context, page, limit int) ([]model.Traspaso, int64, error)
	UpdatePDFRef(ctx context.Context, id uuid.UUID, pdfRef string) error
	DB() *gorm.DB
}

type traspasoRepo struct{ db *gorm.DB }

func NewTraspasoRepository(db *gorm.DB) TraspasoRepository { return &traspasoRepo{db: db} }

func (r *traspasoRepo) DB() *gorm.DB { return r.db }

func (r *traspasoRepo) CreateTx(tx *gorm.DB, t *model.Traspaso) error {
	return tx.Create(t).Error
}

func (r *traspasoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Traspaso, error) {
	var t model.Traspaso
	err := r.db.WithContext(ctx).Preload("Lineas").First(&t, id).Error
	return &t, err
}

func (r *traspasoRepo) List(ctx context.Context, page, limit int) ([]model.Traspaso, int64, error) {
	var out []model.Traspaso
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Traspaso{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Lineas").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&out).Error
	return out, total, err
}

func (r *traspasoRepo) UpdatePDFRef(ctx context.Context, id uuid.UUID, pdfRef string) error {
	return r.db.WithContext(ctx).Model(&model.Traspaso{}).
		Where("id = ?", id).Update("pdf_ref", pdfRef).Error
}
