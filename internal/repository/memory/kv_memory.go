package memory

import (
	"context"
	"sync"

	"sahaya/internal/repository"
)

// KVMemory is a process-local KeyValueRepository used for development and tests.
// Values are copied on the way in and out.
type KVMemory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewKVMemory creates an empty in-memory repository.
func NewKVMemory() *KVMemory {
	return &KVMemory{data: make(map[string][]byte)}
}

var _ repository.KeyValueRepository = (*KVMemory)(nil)

func (m *KVMemory) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, repository.ErrEmptyKey
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *KVMemory) Put(_ context.Context, key string, value []byte) error {
	if key == "" {
		return repository.ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *KVMemory) Delete(_ context.Context, key string) error {
	if key == "" {
		return repository.ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *KVMemory) Ping(context.Context) error { return nil }
