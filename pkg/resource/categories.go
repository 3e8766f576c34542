package resource

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/atlas-tours/travel-client/pkg/logging"
	"github.com/atlas-tours/travel-client/pkg/remote"
	"github.com/atlas-tours/travel-client/pkg/store"
)

// SeedCategories is the fallback category list used before the first
// successful refresh.
func SeedCategories() []string {
	return []string{"Adventure", "Beach", "Culture", "Food"}
}

// Categories manages the category collection.
//
// A category's identity is its name: the wire protocol has no numeric
// key, so names must stay unique within the collection. Renaming is
// therefore delete+create — it does not cascade into tours referencing
// the old name (they keep their string and remain reachable through
// Tours.ByCategory).
type Categories struct {
	remote *remote.Client
	cache  *store.Collection[string]
	busy   atomic.Bool
	logger zerolog.Logger
}

// NewCategories creates the category manager with the seed list.
func NewCategories(client *remote.Client) *Categories {
	cache := store.NewCollection[string]("categories", nil)
	cache.Hydrate(context.Background(), SeedCategories())
	return &Categories{
		remote: client,
		cache:  cache,
		logger: logging.NewLogger("categories"),
	}
}

// Add creates a category. Empty and duplicate names are validation
// errors; no transport call is made for them.
func (c *Categories) Add(ctx context.Context, name string) (Status, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		rejectedTotal.WithLabelValues("categories", "validation").Inc()
		return 0, &ValidationError{Resource: "categories", Err: fmt.Errorf("name is required")}
	}
	if c.Exists(name) {
		rejectedTotal.WithLabelValues("categories", "validation").Inc()
		return 0, &ValidationError{Resource: "categories", Err: fmt.Errorf("name %q already exists", name)}
	}
	if !c.busy.CompareAndSwap(false, true) {
		rejectedTotal.WithLabelValues("categories", "busy").Inc()
		return 0, ErrMutationInFlight
	}
	defer c.busy.Store(false)

	if err := c.remote.CreateCategory(ctx, name); err != nil {
		c.degrade(ctx, "add", err, append(c.cache.Snapshot(), name))
		return StatusDegraded, nil
	}
	if !c.reconcile(ctx, func() { c.degrade(ctx, "add", nil, append(c.cache.Snapshot(), name)) }) {
		return StatusDegraded, nil
	}
	return StatusReconciled, nil
}

// Remove deletes a category by name. Removing a name that is not present
// leaves the collection unchanged and raises no error.
func (c *Categories) Remove(ctx context.Context, name string) (Status, error) {
	if !c.Exists(name) {
		return StatusReconciled, nil
	}
	if !c.busy.CompareAndSwap(false, true) {
		rejectedTotal.WithLabelValues("categories", "busy").Inc()
		return 0, ErrMutationInFlight
	}
	defer c.busy.Store(false)

	applyLocal := func() []string {
		next := make([]string, 0, c.cache.Len())
		for _, existing := range c.cache.Snapshot() {
			if existing != name {
				next = append(next, existing)
			}
		}
		return next
	}

	if err := c.remote.DeleteCategory(ctx, name); err != nil {
		c.degrade(ctx, "remove", err, applyLocal())
		return StatusDegraded, nil
	}
	if !c.reconcile(ctx, func() { c.degrade(ctx, "remove", nil, applyLocal()) }) {
		return StatusDegraded, nil
	}
	return StatusReconciled, nil
}

// Rename replaces oldName with newName. Because the name is the primary
// key, this is semantically delete+create: tours referencing oldName are
// not rewritten.
func (c *Categories) Rename(ctx context.Context, oldName, newName string) (Status, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		rejectedTotal.WithLabelValues("categories", "validation").Inc()
		return 0, &ValidationError{Resource: "categories", Err: fmt.Errorf("new name is required")}
	}
	if !c.Exists(oldName) {
		rejectedTotal.WithLabelValues("categories", "validation").Inc()
		return 0, ErrNotFound
	}
	if c.Exists(newName) {
		rejectedTotal.WithLabelValues("categories", "validation").Inc()
		return 0, &ValidationError{Resource: "categories", Err: fmt.Errorf("name %q already exists", newName)}
	}
	if !c.busy.CompareAndSwap(false, true) {
		rejectedTotal.WithLabelValues("categories", "busy").Inc()
		return 0, ErrMutationInFlight
	}
	defer c.busy.Store(false)

	applyLocal := func() []string {
		next := make([]string, 0, c.cache.Len())
		for _, existing := range c.cache.Snapshot() {
			if existing == oldName {
				next = append(next, newName)
			} else {
				next = append(next, existing)
			}
		}
		return next
	}

	createErr := c.remote.CreateCategory(ctx, newName)
	deleteErr := c.remote.DeleteCategory(ctx, oldName)
	if createErr != nil || deleteErr != nil {
		cause := createErr
		if cause == nil {
			cause = deleteErr
		}
		c.degrade(ctx, "rename", cause, applyLocal())
		return StatusDegraded, nil
	}
	if !c.reconcile(ctx, func() { c.degrade(ctx, "rename", nil, applyLocal()) }) {
		return StatusDegraded, nil
	}
	return StatusReconciled, nil
}

// Refresh refetches the authoritative name list. On failure the previous
// list stays untouched and the error is surfaced.
func (c *Categories) Refresh(ctx context.Context) error {
	names, err := c.remote.ListCategories(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Category list refresh failed, keeping last known good data")
		return err
	}
	c.cache.Replace(ctx, names, false)
	return nil
}

func (c *Categories) reconcile(ctx context.Context, onFailure func()) bool {
	names, err := c.remote.ListCategories(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Reconciliation refetch failed, applying delta locally")
		onFailure()
		return false
	}
	c.cache.Replace(ctx, names, false)
	reconciliationsTotal.WithLabelValues("categories").Inc()
	return true
}

func (c *Categories) degrade(ctx context.Context, op string, cause error, next []string) {
	optimisticTotal.WithLabelValues("categories").Inc()
	c.logger.Warn().
		Err(cause).
		Str("operation", op).
		Msg("Transport failed, applying mutation locally in degraded mode")
	c.cache.Replace(ctx, next, true)
}

// All returns a copy of the current category name list.
func (c *Categories) All() []string {
	return c.cache.Snapshot()
}

// Exists reports whether a category with the given name is present.
func (c *Categories) Exists(name string) bool {
	for _, existing := range c.cache.Snapshot() {
		if existing == name {
			return true
		}
	}
	return false
}

// Degraded reports whether the collection may have diverged from server
// truth.
func (c *Categories) Degraded() bool {
	return c.cache.Degraded()
}
