// Package storage persists the rate table between runs.
// Supports two backends: a local JSON file and memory (for testing).
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"utilfee/core/demo"
	"utilfee/core/rates"
	"utilfee/core/types"
	"utilfee/internal/errors"
)

// Backend is a storage backend type
type Backend string

const (
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// Store is the storage interface
type Store interface {
	// Load returns the persisted periods. Missing or malformed data is not an
	// error: the built-in demo periods are returned instead.
	Load(ctx context.Context) ([]types.Period, error)

	// Save replaces the persisted periods
	Save(ctx context.Context, periods []types.Period) error

	// Reset clears persisted state and returns the demo periods
	Reset(ctx context.Context) ([]types.Period, error)

	// Close closes the store
	Close() error
}

// FileStore is a file-based storage backend
type FileStore struct {
	path   string
	logger *zap.Logger
	mu     sync.RWMutex
}

// NewFileStore creates a file store
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Storage("failed to create storage directory", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}, nil
}

// Path returns the document location
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) ([]types.Period, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("no persisted rate table, using demo periods", zap.String("path", s.path))
		} else {
			s.logger.Warn("failed to read rate table, using demo periods", zap.String("path", s.path), zap.Error(err))
		}
		return demo.Periods(), nil
	}

	periods, err := rates.DecodeJSON(data)
	if err != nil {
		s.logger.Warn("malformed rate table, using demo periods", zap.String("path", s.path), zap.Error(err))
		return demo.Periods(), nil
	}

	s.logger.Debug("loaded rate table", zap.String("path", s.path), zap.Int("periods", len(periods)))
	return periods, nil
}

func (s *FileStore) Save(ctx context.Context, periods []types.Period) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := rates.EncodeJSON(periods)
	if err != nil {
		return errors.Internal("failed to marshal rate table", err)
	}

	// Write next to the target and rename so a crash never leaves half a document
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".periods-*.json")
	if err != nil {
		return errors.Storage("failed to create temporary file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Storage("failed to write rate table", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Storage("failed to write rate table", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Storage("failed to replace rate table", err)
	}

	s.logger.Debug("saved rate table", zap.String("path", s.path), zap.Int("periods", len(periods)))
	return nil
}

func (s *FileStore) Reset(ctx context.Context) ([]types.Period, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return nil, errors.Storage("failed to remove rate table", err)
	}
	s.logger.Info("rate table reset to demo periods", zap.String("path", s.path))
	return demo.Periods(), nil
}

func (s *FileStore) Close() error {
	return nil
}

// MemoryStore is an in-memory storage backend (for testing).
// It keeps the encoded document so loads exercise the same decode path.
type MemoryStore struct {
	data []byte
	mu   sync.RWMutex
}

// NewMemoryStore creates a memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWithData creates a memory store holding a raw document
func NewMemoryStoreWithData(data []byte) *MemoryStore {
	return &MemoryStore{data: append([]byte(nil), data...)}
}

func (s *MemoryStore) Load(ctx context.Context) ([]types.Period, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return demo.Periods(), nil
	}
	periods, err := rates.DecodeJSON(s.data)
	if err != nil {
		return demo.Periods(), nil
	}
	return periods, nil
}

func (s *MemoryStore) Save(ctx context.Context, periods []types.Period) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := rates.EncodeJSON(periods)
	if err != nil {
		return errors.Internal("failed to marshal rate table", err)
	}
	s.data = data
	return nil
}

func (s *MemoryStore) Reset(ctx context.Context) ([]types.Period, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil
	return demo.Periods(), nil
}

// Bytes returns the stored document, nil when nothing was saved
func (s *MemoryStore) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.data...)
}

func (s *MemoryStore) Close() error {
	return nil
}

// StoreFactory creates stores by backend type
func StoreFactory(backend Backend, config map[string]string, logger *zap.Logger) (Store, error) {
	switch backend {
	case BackendFile:
		path := config["path"]
		if path == "" {
			path = filepath.Join(".utilfee", "periods.json")
		}
		return NewFileStore(path, logger)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

// Ensure interfaces are implemented
var _ io.Closer = (*FileStore)(nil)
var _ io.Closer = (*MemoryStore)(nil)
var _ Store = (*FileStore)(nil)
var _ Store = (*MemoryStore)(nil)
