// internal/store/kv.go
//
// String key-value persistence, the durable collaborator of the game
// engine. The interface mirrors browser local storage: string values,
// an explicit absent-key case, and nothing else. Values are scoped per
// owner (user id or anonymous cookie id) so players never share state.
//
// Implementations: in-memory (this file, for tests and ephemeral runs)
// and SQLite (sqlite.go).

package store

import (
	"context"
	"sync"
)

// KV is a scoped string key-value store. Get's second return reports
// whether the key existed; a missing key is not an error.
type KV interface {
	Get(ctx context.Context, scope, key string) (string, bool, error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope, key string) error
}

// memoryKV is a map-backed KV implementation.
type memoryKV struct {
	mu   sync.RWMutex
	data map[string]map[string]string // scope → key → value
}

// NewMemoryKV constructs an in-memory KV store.
func NewMemoryKV() KV {
	return &memoryKV{data: make(map[string]map[string]string)}
}

func (m *memoryKV) Get(ctx context.Context, scope, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[scope][key]
	return v, ok, nil
}

func (m *memoryKV) Set(ctx context.Context, scope, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[scope] == nil {
		m.data[scope] = make(map[string]string)
	}
	m.data[scope][key] = value
	return nil
}

func (m *memoryKV) Delete(ctx context.Context, scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[scope], key)
	return nil
}
