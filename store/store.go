// Package store retains accepted action items per meeting. The in-memory
// implementation is the default; a Redis-backed one is available so items
// survive process restarts.
package store

import (
	"context"
	"sync"

	"github.com/ojusave/rtms-perplexity/types"
)

// Store is the action-item retention interface.
type Store interface {
	Save(ctx context.Context, meetingUUID string, item types.ActionItem) error
	List(ctx context.Context, meetingUUID string) ([]types.ActionItem, error)
}

// Memory keeps action items for the lifetime of the process.
type Memory struct {
	mu    sync.Mutex
	items map[string][]types.ActionItem
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string][]types.ActionItem)}
}

// Save appends the item under the meeting's key.
func (m *Memory) Save(_ context.Context, meetingUUID string, item types.ActionItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[meetingUUID] = append(m.items[meetingUUID], item)
	return nil
}

// List returns the items saved for the meeting, in insertion order.
func (m *Memory) List(_ context.Context, meetingUUID string) ([]types.ActionItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.items[meetingUUID]
	out := make([]types.ActionItem, len(items))
	copy(out, items)
	return out, nil
}
