// Package resource provides the managed resource collections: tours,
// bookings and categories.
//
// Each manager orchestrates mutations through the same reconciliation
// policy: validate synchronously, dispatch the remote transport, then
// either refetch the authoritative list and replace the local cache
// wholesale (reconciled) or merge the intended change into the local list
// and mark the collection degraded (optimistic fallback). Availability is
// deliberately favored over strict consistency; the divergence is visible
// through the degraded flag, never silently swallowed.
package resource

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for reconciliation outcomes.
var (
	reconciliationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_reconciliations_total",
		Help: "Mutations confirmed remotely and reconciled by full refetch",
	}, []string{"resource"})

	optimisticTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_optimistic_fallbacks_total",
		Help: "Mutations applied locally after the remote transport failed",
	}, []string{"resource"})

	rejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_mutations_rejected_total",
		Help: "Mutations rejected before any transport call",
	}, []string{"resource", "reason"})
)

// ErrMutationInFlight is returned when a mutation is attempted while
// another mutation on the same resource type is still outstanding. The
// rejected request never reaches the transport layer.
var ErrMutationInFlight = errors.New("mutation already in flight")

// ErrNotFound is returned when an update targets a record that is not in
// the local cache.
var ErrNotFound = errors.New("record not found")

// ValidationError means required mutation fields were missing or
// malformed. It is raised before any transport call; no state changes.
type ValidationError struct {
	Resource string
	Err      error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %v", e.Resource, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Status is the outcome of an accepted mutation.
type Status int

const (
	// StatusReconciled means the backend confirmed the mutation and the
	// local cache was replaced by a fresh authoritative list.
	StatusReconciled Status = iota

	// StatusDegraded means the mutation was applied only locally after
	// the transport failed; the cache may have diverged from server
	// truth until the next successful reconciliation.
	StatusDegraded
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusReconciled:
		return "reconciled"
	case StatusDegraded:
		return "degraded"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// validate is the shared struct validator. Rules live as tags on the
// model types.
var validate = validator.New(validator.WithRequiredStructEnabled())
