// Package store holds the local cache for each resource collection: a
// copy-on-write in-memory list, optionally mirrored to durable storage.
package store

import (
	"context"
	"errors"
)

// ErrNotFound indicates the requested storage entry does not exist.
var ErrNotFound = errors.New("storage entry not found")

// Storage persists the JSON-serialized current list of a durably-cached
// resource type under a stable key. It is read once at startup and
// written after every accepted mutation.
type Storage interface {
	// Load returns the stored bytes for key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores data under key, replacing any previous value.
	Save(ctx context.Context, key string, data []byte) error
}
