package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"tiendapos/internal/dto"
	"tiendapos/internal/repository"

	"github.com/xuri/excelize/v2"
)

type ReporteService interface {
	ResumenVentas(ctx context.Context, filter dto.ReporteFilter) (*dto.ResumenVentasResponse, error)
	// ExportarExcel writes the same aggregation as an xlsx workbook to w.
	ExportarExcel(ctx context.Context, filter dto.ReporteFilter, w io.Writer) error
}

type reporteService struct {
	tickets repository.TicketRepository
}

func NewReporteService(tickets repository.TicketRepository) ReporteService {
	return &reporteService{tickets: tickets}
}

// parseRange defaults to the last 30 days when bounds are missing.
func parseRange(filter dto.ReporteFilter) (time.Time, time.Time, error) {
	hasta := time.Now()
	desde := hasta.AddDate(0, 0, -30)

	if filter.Desde != "" {
		d, err := time.Parse("2006-01-02", filter.Desde)
		if err != nil {
			return desde, hasta, fmt.Errorf("desde inválido: %w", err)
		}
		desde = d
	}
	if filter.Hasta != "" {
		h, err := time.Parse("2006-01-02", filter.Hasta)
		if err != nil {
			return desde, hasta, fmt.Errorf("hasta inválido: %w", err)
		}
		hasta = h
	}
	return desde, hasta, nil
}

func (s *reporteService) ResumenVentas(ctx context.Context, filter dto.ReporteFilter) (*dto.ResumenVentasResponse, error) {
	desde, hasta, err := parseRange(filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.tickets.ResumenVentas(ctx, desde, hasta, filter.Sucursal)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ResumenVentasItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ResumenVentasItem{
			Fecha:    r.Fecha.Format("2006-01-02"),
			Sucursal: r.Sucursal,
			Tickets:  r.Tickets,
			Total:    r.Total,
			Ganancia: r.Ganancia,
		})
	}
	return &dto.ResumenVentasResponse{
		Desde: desde.Format("2006-01-02"),
		Hasta: hasta.Format("2006-01-02"),
		Data:  items,
	}, nil
}

func (s *reporteService) ExportarExcel(ctx context.Context, filter dto.ReporteFilter, w io.Writer) error {
	resumen, err := s.ResumenVentas(ctx, filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	const sheet = "Sheet1"

	headers := []string{"Fecha", "Sucursal", "Tickets", "Venta", "Ganancia"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range resumen.Data {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row.Fecha)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row.Sucursal)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), row.Tickets)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), row.Total.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("E%d", i+2), row.Ganancia.InexactFloat64())
	}

	return f.Write(w)
}
