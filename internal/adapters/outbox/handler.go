package outbox

import (
	"context"
	"time"

	"github.com/rafaelleal24/stock/internal/adapters/config"
	"github.com/rafaelleal24/stock/internal/core/logger"
	"github.com/rafaelleal24/stock/internal/core/port"
)

// Handler relays outbox entries to the broker. Delivery is at least once:
// an entry is deleted only after it was published.
type Handler struct {
	outbox   Repository
	broker   port.BrokerPort
	interval time.Duration
	batch    int
}

const (
	defaultInterval  = 500 * time.Millisecond
	defaultBatchSize = 100
)

// NewHandler falls back to the defaults for a non-positive interval or batch
// size; time.NewTicker panics on a zero interval.
func NewHandler(outbox Repository, broker port.BrokerPort, config config.OutboxConfig) *Handler {
	interval := config.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	batch := config.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}

	return &Handler{
		outbox:   outbox,
		broker:   broker,
		interval: interval,
		batch:    batch,
	}
}

func (h *Handler) Start(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.ProcessPending(ctx)
		}
	}
}

// ProcessPending publishes one batch and returns how many entries left the
// outbox.
func (h *Handler) ProcessPending(ctx context.Context) int {
	entries, err := h.outbox.FetchPending(ctx, h.batch)
	if err != nil {
		logger.Error(ctx, "outbox: failed to fetch pending events", err, map[string]any{
			"batch": h.batch,
		})
		return 0
	}

	published := 0
	for _, entry := range entries {
		eventLogAttributes := map[string]any{
			"event_id":    entry.ID,
			"event_name":  entry.EventName,
			"entity_name": entry.EntityName,
			"attempts":    entry.Attempts,
		}
		if err := h.broker.PublishRaw(ctx, entry.EventName, entry.EntityName, entry.EventData); err != nil {
			logger.Error(ctx, "outbox: failed to publish event", err, eventLogAttributes)
			if markErr := h.outbox.MarkFailed(ctx, entry.ID, err); markErr != nil {
				logger.Warn(ctx, "outbox: failed to record publish attempt", map[string]any{
					"event_id": entry.ID,
					"error":    markErr.Error(),
				})
			}
			continue
		}

		logger.Debug(ctx, "outbox: event published", eventLogAttributes)

		if err := h.outbox.Delete(ctx, entry.ID); err != nil {
			logger.Error(ctx, "outbox: failed to delete event after publish", err, eventLogAttributes)
			continue
		}
		published++
	}

	return published
}
