// Package kv provides the named-slot key-value storage the basket and the
// last order are persisted in.
package kv

import (
	"context"
	"errors"
	"sync"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

// Storage holds string values under named slots. A missing slot is
// reported with ok == false and no error.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type memoryStorage struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemoryStorage returns a process-local Storage
func NewMemoryStorage() Storage {
	return &memoryStorage{slots: make(map[string]string)}
}

func (m *memoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.slots[key]
	return v, ok, nil
}

func (m *memoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[key] = value
	return nil
}

func (m *memoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.slots, key)
	return nil
}
