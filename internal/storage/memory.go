package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Namespace. It backs tests and the ephemeral mode
// selected by an empty STORE_PATH; contents are lost when the process exits.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
	gens map[string]int64
}

// NewMemory returns an empty in-memory namespace.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string][]byte),
		gens: make(map[string]int64),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	m.gens[key]++
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	m.gens[key]++
	return nil
}

func (m *Memory) Generation(_ context.Context, key string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gens[key], nil
}
