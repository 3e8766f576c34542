package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// failingStorage always errors, for persist-failure paths.
type failingStorage struct{}

func (failingStorage) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("storage down")
}

func (failingStorage) Save(context.Context, string, []byte) error {
	return errors.New("storage down")
}

func TestHydrateSeedsEphemeral(t *testing.T) {
	c := NewCollection[record]("test", nil)
	c.Hydrate(context.Background(), []record{{ID: "1"}, {ID: "2"}})

	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if c.Degraded() {
		t.Error("fresh collection should not be degraded")
	}
}

func TestHydrateLoadsFromStorage(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage returned error: %v", err)
	}
	ctx := context.Background()

	stored, _ := json.Marshal([]record{{ID: "stored-1"}})
	if err := storage.Save(ctx, "test", stored); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	c := NewCollection[record]("test", storage)
	c.Hydrate(ctx, []record{{ID: "seed-1"}, {ID: "seed-2"}})

	items := c.Snapshot()
	if len(items) != 1 || items[0].ID != "stored-1" {
		t.Errorf("Snapshot = %+v, want the stored list, not the seed", items)
	}
}

func TestHydrateFallsBackToSeed(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, s Storage)
	}{
		{"missing_entry", func(t *testing.T, s Storage) {}},
		{"unparseable_entry", func(t *testing.T, s Storage) {
			if err := s.Save(context.Background(), "test", []byte("{broken")); err != nil {
				t.Fatalf("Save returned error: %v", err)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, err := NewFileStorage(t.TempDir())
			if err != nil {
				t.Fatalf("NewFileStorage returned error: %v", err)
			}
			tt.prepare(t, storage)

			c := NewCollection[record]("test", storage)
			c.Hydrate(context.Background(), []record{{ID: "seed-1"}})

			items := c.Snapshot()
			if len(items) != 1 || items[0].ID != "seed-1" {
				t.Errorf("Snapshot = %+v, want the seed list", items)
			}
		})
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	c := NewCollection[record]("test", nil)
	c.Hydrate(context.Background(), []record{{ID: "1", Name: "original"}})

	snap := c.Snapshot()
	snap[0].Name = "mutated"

	if got := c.Snapshot()[0].Name; got != "original" {
		t.Errorf("collection item = %q, want %q (snapshots must not alias)", got, "original")
	}
}

func TestReplaceSwapsWholesale(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[record]("test", nil)
	c.Hydrate(ctx, []record{{ID: "1"}})

	held := c.Snapshot()

	c.Replace(ctx, []record{{ID: "2"}, {ID: "3"}}, false)

	// The earlier snapshot stays valid.
	if len(held) != 1 || held[0].ID != "1" {
		t.Errorf("held snapshot = %+v, want the pre-replace list", held)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestReplaceDegradedMarker(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[record]("test", nil)
	c.Hydrate(ctx, nil)

	c.Replace(ctx, []record{{ID: "1"}}, true)
	if !c.Degraded() {
		t.Error("Degraded = false, want true after degraded replace")
	}

	c.Replace(ctx, []record{{ID: "1"}}, false)
	if c.Degraded() {
		t.Error("Degraded = true, want false after reconciled replace")
	}
}

func TestReplacePersistsToStorage(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage returned error: %v", err)
	}
	ctx := context.Background()

	c := NewCollection[record]("test", storage)
	c.Hydrate(ctx, nil)
	c.Replace(ctx, []record{{ID: "1", Name: "persisted"}}, false)

	data, err := storage.Load(ctx, "test")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	var stored []record
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("stored snapshot unparseable: %v", err)
	}
	if len(stored) != 1 || stored[0].Name != "persisted" {
		t.Errorf("stored = %+v, want the replaced list", stored)
	}
}

func TestReplaceSurvivesStorageFailure(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[record]("test", failingStorage{})
	c.Hydrate(ctx, nil)

	// A storage write failure must not lose the in-memory mutation.
	c.Replace(ctx, []record{{ID: "1"}}, false)

	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1 despite the failed persist", c.Len())
	}
}
