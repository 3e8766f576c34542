package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage keeps one JSON file per storage key in a directory. Writes
// go through a temp file and rename so a crash never leaves a
// half-written list behind.
type FileStorage struct {
	dir string
}

// NewFileStorage creates the directory if needed and returns a storage
// backed by it.
func NewFileStorage(dir string) (*FileStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

// Load implements Storage.
func (s *FileStorage) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Save implements Storage.
func (s *FileStorage) Save(_ context.Context, key string, data []byte) error {
	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

func (s *FileStorage) path(key string) string {
	// Keys are internal constants, but keep path traversal out anyway.
	safe := strings.ReplaceAll(strings.ReplaceAll(key, "/", "_"), "..", "_")
	return filepath.Join(s.dir, safe+".json")
}
