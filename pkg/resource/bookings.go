package resource

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/atlas-tours/travel-client/pkg/logging"
	"github.com/atlas-tours/travel-client/pkg/model"
	"github.com/atlas-tours/travel-client/pkg/remote"
	"github.com/atlas-tours/travel-client/pkg/store"
)

// localIDPrefix marks placeholder ids assigned when a booking could only
// be applied locally. The backend id replaces the whole list on the next
// successful reconciliation.
const localIDPrefix = "local-"

// Bookings manages the booking collection.
//
// Bookings are server-authoritative and never persisted on the client:
// ids come from the backend, and the in-memory list is re-derived from
// the remote list after every mutating call. A degraded mutation still
// updates the in-memory list so forms stay responsive, but the store
// carries no durability guarantee across a restart.
type Bookings struct {
	remote *remote.Client
	cache  *store.Collection[model.Booking]
	busy   atomic.Bool
	logger zerolog.Logger
}

// NewBookings creates the booking manager with an empty ephemeral cache.
// Call Refresh to populate it from the backend.
func NewBookings(client *remote.Client) *Bookings {
	cache := store.NewCollection[model.Booking]("bookings", nil)
	cache.Hydrate(context.Background(), []model.Booking{})
	return &Bookings{
		remote: client,
		cache:  cache,
		logger: logging.NewLogger("bookings"),
	}
}

// Add validates and creates a booking. The backend assigns the id; when
// the transport fails, the booking is inserted locally under a
// placeholder id and the collection is marked degraded.
func (b *Bookings) Add(ctx context.Context, booking model.Booking) (model.Booking, Status, error) {
	if booking.NumberOfTravelers == 0 {
		booking.NumberOfTravelers = max(1, len(booking.Travelers))
	}
	if booking.Status == "" {
		booking.Status = model.StatusPending
	}
	if err := validate.Struct(booking); err != nil {
		rejectedTotal.WithLabelValues("bookings", "validation").Inc()
		return model.Booking{}, 0, &ValidationError{Resource: "bookings", Err: err}
	}
	if !b.busy.CompareAndSwap(false, true) {
		rejectedTotal.WithLabelValues("bookings", "busy").Inc()
		return model.Booking{}, 0, ErrMutationInFlight
	}
	defer b.busy.Store(false)

	if err := b.remote.CreateBooking(ctx, booking); err != nil {
		booking = b.localized(booking)
		b.degrade(ctx, "add", err, append(b.cache.Snapshot(), booking))
		return booking, StatusDegraded, nil
	}

	bookings, err := b.remote.ListBookings(ctx)
	if err != nil {
		booking = b.localized(booking)
		b.degrade(ctx, "add", err, append(b.cache.Snapshot(), booking))
		return booking, StatusDegraded, nil
	}
	b.cache.Replace(ctx, bookings, false)
	reconciliationsTotal.WithLabelValues("bookings").Inc()

	// The created booking is whichever record the authoritative list now
	// carries for this contact and departure; return the freshest match.
	for _, candidate := range bookings {
		if candidate.Contact.Email == booking.Contact.Email &&
			candidate.Tour.TourID == booking.Tour.TourID &&
			candidate.DepartureDate == booking.DepartureDate {
			return candidate, StatusReconciled, nil
		}
	}
	return booking, StatusReconciled, nil
}

// Update shallow-merges a patch over the stored booking and pushes the
// merged record.
func (b *Bookings) Update(ctx context.Context, id string, patch model.BookingPatch) (Status, error) {
	if err := validate.Struct(patch); err != nil {
		rejectedTotal.WithLabelValues("bookings", "validation").Inc()
		return 0, &ValidationError{Resource: "bookings", Err: err}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		rejectedTotal.WithLabelValues("bookings", "validation").Inc()
		return 0, &ValidationError{Resource: "bookings", Err: errInvalidStatus(*patch.Status)}
	}
	existing, ok := b.ByID(id)
	if !ok {
		rejectedTotal.WithLabelValues("bookings", "validation").Inc()
		return 0, ErrNotFound
	}
	if !b.busy.CompareAndSwap(false, true) {
		rejectedTotal.WithLabelValues("bookings", "busy").Inc()
		return 0, ErrMutationInFlight
	}
	defer b.busy.Store(false)

	merged := patch.Apply(existing)
	merged.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	applyLocal := func() []model.Booking {
		next := b.cache.Snapshot()
		for i := range next {
			if next[i].ID == id {
				next[i] = merged
			}
		}
		return next
	}

	if err := b.remote.UpdateBooking(ctx, merged); err != nil {
		b.degrade(ctx, "update", err, applyLocal())
		return StatusDegraded, nil
	}
	if !b.reconcile(ctx, func() { b.degrade(ctx, "update", nil, applyLocal()) }) {
		return StatusDegraded, nil
	}
	return StatusReconciled, nil
}

// Remove deletes a booking by id. Removing an id that is not present
// leaves the collection unchanged and raises no error.
func (b *Bookings) Remove(ctx context.Context, id string) (Status, error) {
	if _, ok := b.ByID(id); !ok {
		return StatusReconciled, nil
	}
	if !b.busy.CompareAndSwap(false, true) {
		rejectedTotal.WithLabelValues("bookings", "busy").Inc()
		return 0, ErrMutationInFlight
	}
	defer b.busy.Store(false)

	applyLocal := func() []model.Booking {
		next := make([]model.Booking, 0, b.cache.Len())
		for _, booking := range b.cache.Snapshot() {
			if booking.ID != id {
				next = append(next, booking)
			}
		}
		return next
	}

	if err := b.remote.DeleteBooking(ctx, id); err != nil {
		b.degrade(ctx, "remove", err, applyLocal())
		return StatusDegraded, nil
	}
	if !b.reconcile(ctx, func() { b.degrade(ctx, "remove", nil, applyLocal()) }) {
		return StatusDegraded, nil
	}
	return StatusReconciled, nil
}

// Refresh refetches the authoritative list. On failure the previous
// in-memory list stays untouched and the error is surfaced.
func (b *Bookings) Refresh(ctx context.Context) error {
	bookings, err := b.remote.ListBookings(ctx)
	if err != nil {
		b.logger.Warn().Err(err).Msg("Booking list refresh failed, keeping last known good data")
		return err
	}
	b.cache.Replace(ctx, bookings, false)
	return nil
}

func (b *Bookings) reconcile(ctx context.Context, onFailure func()) bool {
	bookings, err := b.remote.ListBookings(ctx)
	if err != nil {
		b.logger.Warn().Err(err).Msg("Reconciliation refetch failed, applying delta locally")
		onFailure()
		return false
	}
	b.cache.Replace(ctx, bookings, false)
	reconciliationsTotal.WithLabelValues("bookings").Inc()
	return true
}

func (b *Bookings) degrade(ctx context.Context, op string, cause error, next []model.Booking) {
	optimisticTotal.WithLabelValues("bookings").Inc()
	b.logger.Warn().
		Err(cause).
		Str("operation", op).
		Msg("Transport failed, applying mutation locally in degraded mode")
	b.cache.Replace(ctx, next, true)
}

// localized stamps a placeholder id and local timestamps onto a booking
// that could not be confirmed remotely.
func (b *Bookings) localized(booking model.Booking) model.Booking {
	booking.ID = localIDPrefix + uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return booking
}

// All returns a copy of the current booking list.
func (b *Bookings) All() []model.Booking {
	return b.cache.Snapshot()
}

// ByID returns the booking with the given id.
func (b *Bookings) ByID(id string) (model.Booking, bool) {
	for _, booking := range b.cache.Snapshot() {
		if booking.ID == id {
			return booking, true
		}
	}
	return model.Booking{}, false
}

// ByStatus returns all bookings in the given lifecycle state.
func (b *Bookings) ByStatus(status model.BookingStatus) []model.Booking {
	out := []model.Booking{}
	for _, booking := range b.cache.Snapshot() {
		if booking.Status == status {
			out = append(out, booking)
		}
	}
	return out
}

// ByTour returns all bookings snapshotting the given tour id.
func (b *Bookings) ByTour(tourID string) []model.Booking {
	out := []model.Booking{}
	for _, booking := range b.cache.Snapshot() {
		if booking.Tour.TourID == tourID {
			out = append(out, booking)
		}
	}
	return out
}

// Degraded reports whether the collection may have diverged from server
// truth.
func (b *Bookings) Degraded() bool {
	return b.cache.Degraded()
}

type errInvalidStatus model.BookingStatus

func (e errInvalidStatus) Error() string {
	return "invalid booking status " + string(e)
}
