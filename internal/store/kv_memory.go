package store

import (
	"context"
	"sync"
)

// MemoryStorage is an in-process [KeyValueStorage]. It backs tests and runs
// where no local database is wanted.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage returns an empty [MemoryStorage].
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

// UnavailableStorage is the [KeyValueStorage] used when the local database
// cannot be opened. Every call fails with [ErrStorageUnavailable].
type UnavailableStorage struct{}

func (UnavailableStorage) Get(context.Context, string) (string, error) {
	return "", ErrStorageUnavailable
}

func (UnavailableStorage) Set(context.Context, string, string) error {
	return ErrStorageUnavailable
}

func (UnavailableStorage) Delete(context.Context, string) error {
	return ErrStorageUnavailable
}
