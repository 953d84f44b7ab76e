// internal/store/registry.go
//
// In-memory registry of live game sessions, keyed by game ID. This is
// transient routing state for the HTTP layer; durable per-player state
// goes through the KV snapshot codec instead.
//
// Concurrency-safe via RWMutex (concurrent reads allowed, writes
// exclusive). State is lost when the process restarts; games are then
// reconstructed from KV snapshots on demand.

package store

import (
	"context"
	"errors"
	"sync"

	"sanapeli/internal/game"
)

// ErrNotFound is returned by Registry.Get for unknown game IDs.
var ErrNotFound = errors.New("game not found")

// Registry tracks in-progress games by ID.
type Registry interface {
	Save(ctx context.Context, g *game.Game) error
	Get(ctx context.Context, id string) (*game.Game, error)
}

type memoryRegistry struct {
	mu    sync.RWMutex
	games map[string]*game.Game
}

// NewRegistry constructs an in-memory Registry.
func NewRegistry() Registry {
	return &memoryRegistry{games: make(map[string]*game.Game)}
}

func (m *memoryRegistry) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

func (m *memoryRegistry) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}
