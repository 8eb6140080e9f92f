package tests

import (
	"bytes"
	"context"
	"testing"
	"time"

	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func venderConGanancia(repo *stubTicketRepo, sucursal string, total, ganancia int64, dia time.Time) {
	t := &model.Ticket{
		ID:            uuid.New(),
		Sucursal:      sucursal,
		MetodoPago:    "efectivo",
		Total:         decimal.NewFromInt(total),
		GananciaTotal: decimal.NewFromInt(ganancia),
		CreatedAt:     dia,
	}
	repo.tickets[t.ID] = t
}

func TestResumenVentas_AgrupaPorSucursal(t *testing.T) {
	repo := newStubTicketRepo()
	hoy := time.Now()
	venderConGanancia(repo, "centro", 300, 120, hoy)
	venderConGanancia(repo, "centro", 200, 80, hoy)
	venderConGanancia(repo, "norte", 150, 60, hoy)
	svc := service.NewReporteService(repo)

	resp, err := svc.ResumenVentas(context.Background(), dto.ReporteFilter{})
	assert.NoError(t, err)
	require.Len(t, resp.Data, 2)

	porSucursal := map[string]dto.ResumenVentasItem{}
	for _, item := range resp.Data {
		porSucursal[item.Sucursal] = item
	}
	assert.Equal(t, int64(2), porSucursal["centro"].Tickets)
	assert.True(t, porSucursal["centro"].Total.Equal(decimal.NewFromInt(500)))
	assert.True(t, porSucursal["centro"].Ganancia.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, int64(1), porSucursal["norte"].Tickets)
}

func TestResumenVentas_FiltraPorSucursal(t *testing.T) {
	repo := newStubTicketRepo()
	hoy := time.Now()
	venderConGanancia(repo, "centro", 300, 120, hoy)
	venderConGanancia(repo, "norte", 150, 60, hoy)
	svc := service.NewReporteService(repo)

	resp, err := svc.ResumenVentas(context.Background(), dto.ReporteFilter{Sucursal: "norte"})
	assert.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "norte", resp.Data[0].Sucursal)
}

func TestResumenVentas_RespetaRango(t *testing.T) {
	repo := newStubTicketRepo()
	venderConGanancia(repo, "centro", 300, 120, time.Now())
	venderConGanancia(repo, "centro", 999, 400, time.Now().AddDate(0, 0, -90))
	svc := service.NewReporteService(repo)

	// Default range is the last 30 days: the 90-day-old sale stays out.
	resp, err := svc.ResumenVentas(context.Background(), dto.ReporteFilter{})
	assert.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.True(t, resp.Data[0].Total.Equal(decimal.NewFromInt(300)))
}

func TestResumenVentas_FechaInvalida(t *testing.T) {
	svc := service.NewReporteService(newStubTicketRepo())

	_, err := svc.ResumenVentas(context.Background(), dto.ReporteFilter{Desde: "30/08/2026"})
	assert.Error(t, err)
}

func TestExportarExcel_EscribeLibro(t *testing.T) {
	repo := newStubTicketRepo()
	venderConGanancia(repo, "centro", 500, 200, time.Now())
	svc := service.NewReporteService(repo)

	var buf bytes.Buffer
	err := svc.ExportarExcel(context.Background(), dto.ReporteFilter{}, &buf)
	assert.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Fecha", "Sucursal", "Tickets", "Venta", "Ganancia"}, rows[0])
	assert.Equal(t, "centro", rows[1][1])
}
