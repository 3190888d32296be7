package endpointcache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"
)

// ErrNotFound is returned by Storage.Get when nothing is stored under the key.
var ErrNotFound = errors.New("not found")

// Storage is a minimal key-value store for the persisted endpoint.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// FileStorage keeps every key in its own file under Dir.
type FileStorage struct {
	Dir string
}

func NewFileStorage(dir string) *FileStorage {
	if dir == "" {
		dir = "."
	}
	return &FileStorage{Dir: dir}
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.Dir, key)
}

func (s *FileStorage) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

// Set overwrites the file for key. There is no transactional guarantee.
func (s *FileStorage) Set(key string, value []byte) (err error) {
	f, err := os.OpenFile(s.path(key), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open '%s': %w", s.path(key), err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if _, err := f.Write(value); err != nil {
		return fmt.Errorf("failed to write '%s': %w", s.path(key), err)
	}
	return nil
}

// InMemStorage is a Storage that never touches the disk.
type InMemStorage struct {
	values sync.Map
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{}
}

func (s *InMemStorage) Get(key string) ([]byte, error) {
	value, ok := s.values.Load(key)
	if !ok {
		return nil, ErrNotFound
	}
	return value.([]byte), nil
}

func (s *InMemStorage) Set(key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	s.values.Store(key, stored)
	return nil
}
