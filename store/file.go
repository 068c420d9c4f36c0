package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/phanxgames/sticker"
)

// FileStore keeps each configuration as a JSON file named <id>.json.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a file-based store in dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *FileStore) Load(ctx context.Context, id string) (sticker.Config, error) {
	if err := validID(id); err != nil {
		return sticker.Config{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return sticker.Config{}, fmt.Errorf("load %s: %w", id, ErrNotFound)
		}
		return sticker.Config{}, fmt.Errorf("read config file: %w", err)
	}
	return decode(id, data)
}

func (s *FileStore) Save(ctx context.Context, cfg sticker.Config) (string, error) {
	cfg, data, err := prepare(cfg)
	if err != nil {
		return "", fmt.Errorf("save config: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write to a temp file and rename over the target.
	tmp, err := os.CreateTemp(s.dir, cfg.ID+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("write config file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write config file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(cfg.ID)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write config file: %w", err)
	}
	return cfg.ID, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove config file: %w", err)
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// Ensure FileStore implements ConfigStore.
var _ ConfigStore = (*FileStore)(nil)
