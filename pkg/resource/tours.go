package resource

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/atlas-tours/travel-client/pkg/logging"
	"github.com/atlas-tours/travel-client/pkg/model"
	"github.com/atlas-tours/travel-client/pkg/remote"
	"github.com/atlas-tours/travel-client/pkg/store"
)

// SortField selects the ordering for AllSorted.
type SortField int

const (
	// SortByName orders tours alphabetically.
	SortByName SortField = iota

	// SortByPrice orders tours by price.
	SortByPrice

	// SortByRating orders tours by rating.
	SortByRating
)

// Tours manages the tour collection.
//
// Tours are durably cached: ids are assigned locally at creation, and
// every accepted mutation is immediately serialized back to storage.
type Tours struct {
	remote *remote.Client
	cache  *store.Collection[model.Tour]
	busy   atomic.Bool
	logger zerolog.Logger
}

// NewTours creates the tour manager and hydrates its cache: from durable
// storage when available, otherwise from the fixed seed collection.
func NewTours(ctx context.Context, client *remote.Client, storage store.Storage) *Tours {
	cache := store.NewCollection[model.Tour]("tours", storage)
	cache.Hydrate(ctx, model.SeedTours())
	return &Tours{
		remote: client,
		cache:  cache,
		logger: logging.NewLogger("tours"),
	}
}

// Add validates and creates a tour. The id is assigned locally before any
// transport call. On transport failure the tour is inserted into the
// local cache anyway and the collection is marked degraded.
func (t *Tours) Add(ctx context.Context, tour model.Tour) (model.Tour, Status, error) {
	if err := validate.Struct(tour); err != nil {
		rejectedTotal.WithLabelValues("tours", "validation").Inc()
		return model.Tour{}, 0, &ValidationError{Resource: "tours", Err: err}
	}
	if !t.busy.CompareAndSwap(false, true) {
		rejectedTotal.WithLabelValues("tours", "busy").Inc()
		return model.Tour{}, 0, ErrMutationInFlight
	}
	defer t.busy.Store(false)

	tour.ID = uuid.NewString()

	if err := t.remote.CreateTour(ctx, tour); err != nil {
		t.degrade(ctx, "add", err, append(t.cache.Snapshot(), tour))
		return tour, StatusDegraded, nil
	}
	if !t.reconcile(ctx, func() { t.degrade(ctx, "add", nil, append(t.cache.Snapshot(), tour)) }) {
		return tour, StatusDegraded, nil
	}
	return tour, StatusReconciled, nil
}

// Update shallow-merges a patch over the stored tour and pushes the
// merged record. A patch for an unknown id returns ErrNotFound without a
// transport call.
func (t *Tours) Update(ctx context.Context, id string, patch model.TourPatch) (Status, error) {
	if err := validate.Struct(patch); err != nil {
		rejectedTotal.WithLabelValues("tours", "validation").Inc()
		return 0, &ValidationError{Resource: "tours", Err: err}
	}
	existing, ok := t.ByID(id)
	if !ok {
		rejectedTotal.WithLabelValues("tours", "validation").Inc()
		return 0, ErrNotFound
	}
	if !t.busy.CompareAndSwap(false, true) {
		rejectedTotal.WithLabelValues("tours", "busy").Inc()
		return 0, ErrMutationInFlight
	}
	defer t.busy.Store(false)

	merged := patch.Apply(existing)
	applyLocal := func() []model.Tour {
		next := t.cache.Snapshot()
		for i := range next {
			if next[i].ID == id {
				next[i] = merged
			}
		}
		return next
	}

	if err := t.remote.UpdateTour(ctx, merged); err != nil {
		t.degrade(ctx, "update", err, applyLocal())
		return StatusDegraded, nil
	}
	if !t.reconcile(ctx, func() { t.degrade(ctx, "update", nil, applyLocal()) }) {
		return StatusDegraded, nil
	}
	return StatusReconciled, nil
}

// Remove deletes a tour by id. Removing an id that is not present leaves
// the collection unchanged and raises no error.
func (t *Tours) Remove(ctx context.Context, id string) (Status, error) {
	if _, ok := t.ByID(id); !ok {
		return StatusReconciled, nil
	}
	if !t.busy.CompareAndSwap(false, true) {
		rejectedTotal.WithLabelValues("tours", "busy").Inc()
		return 0, ErrMutationInFlight
	}
	defer t.busy.Store(false)

	applyLocal := func() []model.Tour {
		next := make([]model.Tour, 0, t.cache.Len())
		for _, tour := range t.cache.Snapshot() {
			if tour.ID != id {
				next = append(next, tour)
			}
		}
		return next
	}

	if err := t.remote.DeleteTour(ctx, id); err != nil {
		t.degrade(ctx, "remove", err, applyLocal())
		return StatusDegraded, nil
	}
	if !t.reconcile(ctx, func() { t.degrade(ctx, "remove", nil, applyLocal()) }) {
		return StatusDegraded, nil
	}
	return StatusReconciled, nil
}

// Refresh refetches the authoritative list. On failure the previous cache
// stays untouched and the error is surfaced for a user-initiated retry.
func (t *Tours) Refresh(ctx context.Context) error {
	tours, err := t.remote.ListTours(ctx)
	if err != nil {
		t.logger.Warn().Err(err).Msg("Tour list refresh failed, keeping last known good data")
		return err
	}
	t.cache.Replace(ctx, tours, false)
	return nil
}

// reconcile refetches the full list after a confirmed mutation and swaps
// the cache wholesale, clearing any degraded marker. When the refetch
// itself fails, onFailure applies the optimistic delta instead and the
// caller reports a degraded outcome.
func (t *Tours) reconcile(ctx context.Context, onFailure func()) bool {
	tours, err := t.remote.ListTours(ctx)
	if err != nil {
		t.logger.Warn().Err(err).Msg("Reconciliation refetch failed, applying delta locally")
		onFailure()
		return false
	}
	t.cache.Replace(ctx, tours, false)
	reconciliationsTotal.WithLabelValues("tours").Inc()
	return true
}

// degrade applies the intended change directly to the local cache and
// marks the collection degraded.
func (t *Tours) degrade(ctx context.Context, op string, cause error, next []model.Tour) {
	optimisticTotal.WithLabelValues("tours").Inc()
	t.logger.Warn().
		Err(cause).
		Str("operation", op).
		Msg("Transport failed, applying mutation locally in degraded mode")
	t.cache.Replace(ctx, next, true)
}

// ---------------------------------------------------------------------------
// Read accessors: pure projections over the current list.
// ---------------------------------------------------------------------------

// All returns a copy of the current tour list.
func (t *Tours) All() []model.Tour {
	return t.cache.Snapshot()
}

// ByID returns the tour with the given id.
func (t *Tours) ByID(id string) (model.Tour, bool) {
	for _, tour := range t.cache.Snapshot() {
		if tour.ID == id {
			return tour, true
		}
	}
	return model.Tour{}, false
}

// ByCategory returns all tours referencing the category name.
func (t *Tours) ByCategory(category string) []model.Tour {
	out := []model.Tour{}
	for _, tour := range t.cache.Snapshot() {
		if tour.Category == category {
			out = append(out, tour)
		}
	}
	return out
}

// Featured returns the featured subset.
func (t *Tours) Featured() []model.Tour {
	out := []model.Tour{}
	for _, tour := range t.cache.Snapshot() {
		if tour.Featured {
			out = append(out, tour)
		}
	}
	return out
}

// Search returns tours whose name, location or description contains the
// query, case-insensitively. An empty query matches everything.
func (t *Tours) Search(query string) []model.Tour {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []model.Tour{}
	for _, tour := range t.cache.Snapshot() {
		if q == "" ||
			strings.Contains(strings.ToLower(tour.Name), q) ||
			strings.Contains(strings.ToLower(tour.Location), q) ||
			strings.Contains(strings.ToLower(tour.Description), q) {
			out = append(out, tour)
		}
	}
	return out
}

// AllSorted returns the current list ordered by the given field.
func (t *Tours) AllSorted(field SortField, ascending bool) []model.Tour {
	tours := t.cache.Snapshot()
	less := func(a, b model.Tour) bool {
		switch field {
		case SortByPrice:
			return a.Price < b.Price
		case SortByRating:
			return a.Rating < b.Rating
		default:
			return a.Name < b.Name
		}
	}
	sort.SliceStable(tours, func(i, j int) bool {
		if ascending {
			return less(tours[i], tours[j])
		}
		return less(tours[j], tours[i])
	})
	return tours
}

// Degraded reports whether the collection may have diverged from server
// truth.
func (t *Tours) Degraded() bool {
	return t.cache.Degraded()
}
