package repository

import (
	"context"
	"time"

	"tiendapos/internal/dto"
	"tiendapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TicketRepository interface {
	CreateTx(tx *gorm.DB, t *model.Ticket) error
	// MaxNumeroSecuenciaTx reads the highest sequence assigned for a sucursal,
	// 0 when none exists. Must run inside the same tx as the insert so that a
	// losing race surfaces as a duplicate-key error, not a lost update.
	MaxNumeroSecuenciaTx(tx *gorm.DB, sucursal string) (int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	List(ctx context.Context, filter dto.TicketFilter) ([]model.Ticket, int64, error)
	// SumDia aggregates cash/card totals and ticket count for one sucursal+day.
	SumDia(ctx context.Context, sucursal string, fecha time.Time) (efectivo, tarjeta decimal.Decimal, count int64, err error)
	// ResumenVentas groups tickets by day and sucursal over a date range.
	ResumenVentas(ctx context.Context, desde, hasta time.Time, sucursal string) ([]dto.ResumenVentasRow, error)
	DB() *gorm.DB
}

type ticketRepo struct{ db *gorm.DB }

func NewTicketRepository(db *gorm.DB) TicketRepository { return &ticketRepo{db: db} }

func (r *ticketRepo) DB() *gorm.DB { return r.db }

func (r *ticketRepo) CreateTx(tx *gorm.DB, t *model.Ticket) error {
	return tx.Create(t).Error
}

func (r *ticketRepo) MaxNumeroSecuenciaTx(tx *gorm.DB, sucursal string) (int, error) {
	var max int
	err := tx.Model(&model.Ticket{}).
		Where("sucursal = ?", sucursal).
		Select("COALESCE(MAX(numero_secuencia), 0)").
		Scan(&max).Error
	return max, err
}

func (r *ticketRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).Preload("Items").Preload("Usuario").First(&t, id).Error
	return &t, err
}

func (r *ticketRepo) List(ctx context.Context, filter dto.TicketFilter) ([]model.Ticket, int64, error) {
	var tickets []model.Ticket
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Ticket{})
	if filter.Sucursal != "" {
		q = q.Where("sucursal = ?", filter.Sucursal)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(created_at) = ?", filter.Fecha)
	} else {
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&tickets).Error
	return tickets, total, err
}

func (r *ticketRepo) SumDia(ctx context.Context, sucursal string, fecha time.Time) (decimal.Decimal, decimal.Decimal, int64, error) {
	type row struct {
		Efectivo decimal.Decimal
		Tarjeta  decimal.Decimal
		Tickets  int64
	}
	var out row
	err := r.db.WithContext(ctx).Model(&model.Ticket{}).
		Where("sucursal = ? AND DATE(created_at) = DATE(?)", sucursal, fecha).
		Select(`COALESCE(SUM(total) FILTER (WHERE metodo_pago = 'efectivo'), 0) AS efectivo,
			COALESCE(SUM(total) FILTER (WHERE metodo_pago = 'tarjeta'), 0) AS tarjeta,
			COUNT(*) AS tickets`).
		Scan(&out).Error
	return out.Efectivo, out.Tarjeta, out.Tickets, err
}

func (r *ticketRepo) ResumenVentas(ctx context.Context, desde, hasta time.Time, sucursal string) ([]dto.ResumenVentasRow, error) {
	var rows []dto.ResumenVentasRow
	q := r.db.WithContext(ctx).Model(&model.Ticket{}).
		Where("DATE(created_at) BETWEEN DATE(?) AND DATE(?)", desde, hasta)
	if sucursal != "" {
		q = q.Where("sucursal = ?", sucursal)
	}
	err := q.Select(`DATE(created_at) AS fecha, sucursal,
			COUNT(*) AS tickets,
			COALESCE(SUM(total), 0) AS total,
			COALESCE(SUM(ganancia_total), 0) AS ganancia`).
		Group("DATE(created_at), sucursal").
		Order("fecha ASC, sucursal ASC").
		Scan(&rows).Error
	return rows, err
}
