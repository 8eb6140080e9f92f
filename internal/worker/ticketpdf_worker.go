package worker

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"tiendapos/internal/infra"
	"tiendapos/internal/repository"
)

// TicketPDFPayload identifies the ticket whose receipt must be rendered.
type TicketPDFPayload struct {
	TicketID string `json:"ticket_id"`
}

// TicketPDFWorker renders thermal-format receipt PDFs off the request path.
type TicketPDFWorker struct {
	tickets     repository.TicketRepository
	negocios    repository.NegocioRepository
	rdb         *redis.Client
	storagePath string
}

func NewTicketPDFWorker(tickets repository.TicketRepository, negocios repository.NegocioRepository, rdb *redis.Client, storagePath string) *TicketPDFWorker {
	return &TicketPDFWorker{tickets: tickets, negocios: negocios, rdb: rdb, storagePath: storagePath}
}

func (w *TicketPDFWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload TicketPDFPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("ticket pdf job: bad payload")
		SendToDLQ(ctx, w.rdb, QueueTicketPDF, "ticket_pdf", raw, "unmarshal: "+err.Error(), 1)
		return
	}

	id, err := uuid.Parse(payload.TicketID)
	if err != nil {
		log.Error().Err(err).Str("ticket_id", payload.TicketID).Msg("ticket pdf job: bad ticket id")
		SendToDLQ(ctx, w.rdb, QueueTicketPDF, "ticket_pdf", raw, "parse id: "+err.Error(), 1)
		return
	}

	ticket, err := w.tickets.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("ticket_id", payload.TicketID).Msg("ticket pdf job: ticket not found")
		SendToDLQ(ctx, w.rdb, QueueTicketPDF, "ticket_pdf", raw, "find ticket: "+err.Error(), 1)
		return
	}

	nombreNegocio := "Tienda"
	if negocio, err := w.negocios.Get(ctx); err == nil && negocio != nil {
		nombreNegocio = negocio.Nombre
	}

	path, err := infra.GenerateTicketPDF(ticket, nombreNegocio, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("ticket_id", payload.TicketID).Msg("ticket pdf generation failed")
		SendToDLQ(ctx, w.rdb, QueueTicketPDF, "ticket_pdf", raw, "generate: "+err.Error(), 1)
		return
	}

	log.Info().Str("ticket_id", payload.TicketID).Str("path", path).Msg("receipt pdf generated")
}
