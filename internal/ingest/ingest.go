// Package ingest persists raw order-event payloads into blob storage. It
// performs no validation and no joining: the payload is stored verbatim
// under a timestamped, unique object name so one malformed event can never
// block ingestion of the rest.
package ingest

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderqa/internal/blob"
	"orderqa/internal/metrics"
)

// Handler stores one event payload per call.
type Handler struct {
	store  blob.Store
	logger *zap.Logger
	reg    *metrics.Registry

	// Split for testability.
	now   func() time.Time
	newID func() string
}

func NewHandler(store blob.Store, logger *zap.Logger, reg *metrics.Registry) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
		reg:    reg,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// ObjectName builds the unique object name for an event that arrived at t.
func ObjectName(t time.Time, id string) string {
	return fmt.Sprintf("%d-%s.json", t.UnixNano(), id)
}

// Handle stores a single raw payload keyed by its arrival date. The caller
// decides what an error means; the runner logs it and moves on.
func (h *Handler) Handle(payload []byte) error {
	h.reg.EventsReceived.Inc()
	arrival := h.now()
	name := ObjectName(arrival, h.newID())

	t0 := time.Now()
	if err := h.store.Put(arrival, name, payload); err != nil {
		h.reg.EventsFailed.Inc()
		return fmt.Errorf("store event %s: %w", name, err)
	}
	h.reg.StoreLatencySec.Observe(time.Since(t0).Seconds())
	h.reg.EventsStored.Inc()

	h.logger.Debug("event stored",
		zap.String("object", name),
		zap.Int("bytes", len(payload)))
	return nil
}
