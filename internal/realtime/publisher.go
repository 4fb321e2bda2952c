// Package realtime broadcasts order and notification events to connected
// clients. The transport is Redis pub/sub on a single channel; an SSE
// endpoint relays the channel to browsers. Delivery is best-effort: there is
// no acknowledgement, per-client tracking, or replay on reconnect.
package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Channel is the single pub/sub channel all subscribers join.
const Channel = "notificaciones"

// Event names pushed over the channel.
const (
	EventOrdenActualizada         = "ordenActualizada"
	EventNuevaNotificacion        = "nuevaNotificacion"
	EventEstadisticasActualizadas = "estadisticasActualizadas"
)

// Publisher is injected into every service that needs to emit events, so
// tests can substitute a no-op implementation. All methods are
// fire-and-forget: a failed emit degrades to a warning log and callers never
// observe the error.
type Publisher interface {
	OrdenActualizada(ctx context.Context, orden interface{})
	NuevaNotificacion(ctx context.Context, notificacion interface{})
	EstadisticasActualizadas(ctx context.Context, stats interface{})
}

// Message is the wire envelope: the raw entity plus a timestamp.
type Message struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

// ── Redis implementation ─────────────────────────────────────────────────────

type redisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) Publisher {
	return &redisPublisher{rdb: rdb}
}

func (p *redisPublisher) OrdenActualizada(ctx context.Context, orden interface{}) {
	p.publish(ctx, EventOrdenActualizada, orden)
}

func (p *redisPublisher) NuevaNotificacion(ctx context.Context, notificacion interface{}) {
	p.publish(ctx, EventNuevaNotificacion, notificacion)
}

func (p *redisPublisher) EstadisticasActualizadas(ctx context.Context, stats interface{}) {
	p.publish(ctx, EventEstadisticasActualizadas, stats)
}

func (p *redisPublisher) publish(ctx context.Context, event string, data interface{}) {
	msg := Message{
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	encoded, err := json.Marshal(msg)
	if err != nil {
		log.Warn().Err(err).Str("event", event).Msg("realtime: marshal failed")
		return
	}
	if err := p.rdb.Publish(ctx, Channel, encoded).Err(); err != nil {
		log.Warn().Err(err).Str("event", event).Msg("realtime: publish failed")
	}
}

// ── No-op implementation (tests, degraded mode) ──────────────────────────────

type noopPublisher struct{}

func NewNoopPublisher() Publisher { return noopPublisher{} }

func (noopPublisher) OrdenActualizada(context.Context, interface{})         {}
func (noopPublisher) NuevaNotificacion(context.Context, interface{})        {}
func (noopPublisher) EstadisticasActualizadas(context.Context, interface{}) {}
