package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"tiendapos/internal/infra"
)

const emailMaxAttempts = 3

// EmailJobPayload describes an outbound mail job.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path,omitempty"`
}

// EmailWorker delivers queued mail through the SMTP mailer,
// retrying transient failures before parking the job in the DLQ.
type EmailWorker struct {
	mailer *infra.Mailer
	rdb    *redis.Client
}

func NewEmailWorker(mailer *infra.Mailer, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, rdb: rdb}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email job: bad payload")
		SendToDLQ(ctx, w.rdb, QueueEmail, "email", raw, "unmarshal: "+err.Error(), 1)
		return
	}

	var lastErr error
	for attempt := 1; attempt <= emailMaxAttempts; attempt++ {
		lastErr = w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
		if lastErr == nil {
			log.Info().Str("to", payload.ToEmail).Str("subject", payload.Subject).Msg("email sent")
			return
		}
		log.Warn().Err(lastErr).Int("attempt", attempt).Str("to", payload.ToEmail).Msg("email send failed")
		time.Sleep(time.Duration(attempt) * time.Second)
	}

	SendToDLQ(ctx, w.rdb, QueueEmail, "email", raw, lastErr.Error(), emailMaxAttempts)
}
