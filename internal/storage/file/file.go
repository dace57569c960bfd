package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"moviehub/proj/internal/storage"
	"os"
	"path/filepath"
	"sync"
)

// Storage is a key-value store backed by a single JSON object on disk.
// Writes go to a temporary file that is renamed over the original.
type Storage struct {
	path string
	mu   sync.Mutex
}

func New(path string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %w", storage.ErrStorage, err)
	}
	return &Storage{path: path}, nil
}

func (s *Storage) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.read()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

func (s *Storage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.read()
	if err != nil {
		// the file is unreadable as a whole; start over instead of failing every write
		values = make(map[string]string)
	}
	values[key] = value
	return s.write(values)
}

func (s *Storage) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrStorage, err)
	}
	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: corrupted data file %s: %w", storage.ErrStorage, s.path, err)
	}
	return values, nil
}

func (s *Storage) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorage, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorage, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", storage.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorage, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrStorage, err)
	}
	return nil
}
