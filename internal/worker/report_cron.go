package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"tiendapos/internal/repository"
)

// ReportScheduler emails a per-sucursal sales summary on a cron schedule,
// covering the previous day.
type ReportScheduler struct {
	tickets     repository.TicketRepository
	dispatcher  *Dispatcher
	reportEmail string
	cron        *cron.Cron
}

func NewReportScheduler(tickets repository.TicketRepository, dispatcher *Dispatcher, reportEmail string) *ReportScheduler {
	return &ReportScheduler{
		tickets:     tickets,
		dispatcher:  dispatcher,
		reportEmail: reportEmail,
		cron:        cron.New(),
	}
}

// Start registers the job and launches the scheduler. Schedule uses the
// standard 5-field cron format, e.g. "0 7 * * *" for 07:00 daily.
func (s *ReportScheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.SendDailySummary(ctx); err != nil {
			log.Error().Err(err).Msg("daily sales summary failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid report cron %q: %w", schedule, err)
	}
	s.cron.Start()
	log.Info().Str("schedule", schedule).Msg("report scheduler started")
	return nil
}

func (s *ReportScheduler) Stop() {
	s.cron.Stop()
}

// SendDailySummary aggregates yesterday's tickets per sucursal and enqueues
// one summary email. Days with no sales still send, marked as such.
func (s *ReportScheduler) SendDailySummary(ctx context.Context) error {
	ayer := time.Now().AddDate(0, 0, -1)
	rows, err := s.tickets.ResumenVentas(ctx, ayer, ayer, "")
	if err != nil {
		return fmt.Errorf("resumen ventas: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Resumen de ventas del %s\n\n", ayer.Format("2006-01-02"))
	if len(rows) == 0 {
		b.WriteString("Sin ventas registradas.\n")
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "Sucursal %s: %d tickets, venta $%s, ganancia $%s\n",
			row.Sucursal, row.Tickets, row.Total.StringFixed(2), row.Ganancia.StringFixed(2))
	}

	payload := EmailJobPayload{
		ToEmail: s.reportEmail,
		Subject: fmt.Sprintf("Resumen de ventas %s", ayer.Format("2006-01-02")),
		Body:    b.String(),
	}
	return s.dispatcher.EnqueueEmail(ctx, payload)
}
