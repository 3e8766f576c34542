package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/atlas-tours/travel-client/pkg/logging"
)

// Prometheus metrics for local cache state.
var (
	collectionSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "travel_collection_size",
		Help: "Number of records currently held per collection",
	}, []string{"collection"})

	degradedState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "travel_collection_degraded",
		Help: "1 when the collection may have diverged from server truth",
	}, []string{"collection"})

	persistErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_persist_errors_total",
		Help: "Failed durable storage writes per collection",
	}, []string{"collection"})
)

// Collection is the in-memory list for one resource type.
//
// Replacements are whole-list swaps of freshly built slices, never
// element-level edits, so consumers holding a snapshot never observe a
// concurrent mutation. The reconciliation controller is the sole writer.
type Collection[T any] struct {
	mu       sync.RWMutex
	items    []T
	degraded bool

	storage Storage // nil for ephemeral, server-authoritative collections
	key     string
	logger  zerolog.Logger
}

// NewCollection creates an empty collection. A nil storage makes the
// collection ephemeral: valid only until the process exits.
func NewCollection[T any](key string, storage Storage) *Collection[T] {
	return &Collection[T]{
		storage: storage,
		key:     key,
		logger:  logging.NewLogger("store").With().Str("collection", key).Logger(),
	}
}

// Hydrate populates the collection once at startup. Durable collections
// load from storage and fall back to seed when the entry is absent or
// unparseable; ephemeral collections start from seed directly.
func (c *Collection[T]) Hydrate(ctx context.Context, seed []T) {
	items := seed

	if c.storage != nil {
		data, err := c.storage.Load(ctx, c.key)
		switch {
		case err == ErrNotFound:
			c.logger.Debug().Msg("No stored snapshot, seeding collection")
		case err != nil:
			c.logger.Warn().Err(err).Msg("Storage load failed, seeding collection")
		default:
			var stored []T
			if jsonErr := json.Unmarshal(data, &stored); jsonErr != nil {
				c.logger.Warn().Err(jsonErr).Msg("Stored snapshot unparseable, seeding collection")
			} else {
				items = stored
			}
		}
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	collectionSize.WithLabelValues(c.key).Set(float64(len(items)))
}

// Snapshot returns a copy of the current list. Callers may hold or mutate
// the returned slice freely.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of records currently held.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Degraded reports whether the collection may have diverged from server
// truth due to a locally applied fallback mutation.
func (c *Collection[T]) Degraded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.degraded
}

// Replace swaps in a new list wholesale and records the degraded marker.
// Durable collections are serialized back to storage immediately; a
// storage write failure is logged and counted but does not fail the
// accepted mutation.
func (c *Collection[T]) Replace(ctx context.Context, items []T, degraded bool) {
	c.mu.Lock()
	c.items = items
	c.degraded = degraded
	c.mu.Unlock()

	collectionSize.WithLabelValues(c.key).Set(float64(len(items)))
	if degraded {
		degradedState.WithLabelValues(c.key).Set(1)
	} else {
		degradedState.WithLabelValues(c.key).Set(0)
	}

	if c.storage == nil {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		persistErrors.WithLabelValues(c.key).Inc()
		c.logger.Error().Err(err).Msg("Snapshot marshal failed")
		return
	}
	if err := c.storage.Save(ctx, c.key, data); err != nil {
		persistErrors.WithLabelValues(c.key).Inc()
		c.logger.Warn().Err(err).Msg("Durable storage write failed")
	}
}
