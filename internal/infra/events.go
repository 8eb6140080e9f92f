package infra

// events.go
// Real-time event fan-out for dashboard views. The publisher is an injected
// dependency of the venta service — never a package-level singleton — so the
// core stays testable without a live bus. Delivery is fire-and-forget.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const ChannelNewTicket = "events:new_ticket"

// NewTicketEvent is emitted after a ticket commits.
type NewTicketEvent struct {
	Date     time.Time       `json:"date"`
	Profit   decimal.Decimal `json:"profit"`
	Sales    decimal.Decimal `json:"sales"`
	Location string          `json:"location"`
}

// EventPublisher abstracts the real-time bus.
type EventPublisher interface {
	PublishNewTicket(ctx context.Context, ev NewTicketEvent)
}

// RedisPublisher publishes events over Redis pub/sub.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

// PublishNewTicket is best-effort: a failed publish is logged, never surfaced
// to the sale that triggered it.
func (p *RedisPublisher) PublishNewTicket(ctx context.Context, ev NewTicketEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Msg("events: marshal newTicket")
		return
	}
	if err := p.rdb.Publish(ctx, ChannelNewTicket, data).Err(); err != nil {
		log.Warn().Err(err).Msg("events: publish newTicket failed")
	}
}

// NopPublisher discards events. Used in tests and CLI tools.
type NopPublisher struct{}

func (NopPublisher) PublishNewTicket(context.Context, NewTicketEvent) {}
