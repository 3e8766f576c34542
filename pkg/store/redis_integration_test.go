//go:build integration
// +build integration

package store

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	cleanup := func() {
		redisClient.Close()
		container.Terminate(ctx)
	}

	return redisClient, cleanup
}

func TestRedisStorageRoundTrip(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	ctx := context.Background()
	storage := NewRedisStorage(redisClient, "travel-test")

	want := []byte(`[{"id":"t-1","name":"Andes Highland Trek"}]`)
	if err := storage.Save(ctx, "tours", want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := storage.Load(ctx, "tours")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("Load = %s, want %s", got, want)
	}

	// Keys carry the configured prefix.
	if n, err := redisClient.Exists(ctx, "travel-test:tours").Result(); err != nil || n != 1 {
		t.Errorf("Exists(travel-test:tours) = %d, %v, want 1, nil", n, err)
	}
}

func TestRedisStorageMissingKey(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	storage := NewRedisStorage(redisClient, "travel-test")
	if _, err := storage.Load(context.Background(), "absent"); err != ErrNotFound {
		t.Errorf("Load of missing key = %v, want ErrNotFound", err)
	}
}

func TestCollectionWithRedisStorage(t *testing.T) {
	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	ctx := context.Background()
	storage := NewRedisStorage(redisClient, "travel-test")

	c := NewCollection[record]("tours", storage)
	c.Hydrate(ctx, []record{{ID: "seed"}})
	c.Replace(ctx, []record{{ID: "replaced"}}, false)

	// A second collection over the same storage sees the replaced list.
	c2 := NewCollection[record]("tours", storage)
	c2.Hydrate(ctx, []record{{ID: "seed"}})

	items := c2.Snapshot()
	if len(items) != 1 || items[0].ID != "replaced" {
		t.Errorf("rehydrated snapshot = %+v, want the persisted list", items)
	}
}
