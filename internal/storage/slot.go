// Package storage persists the task collection as one opaque value under
// a fixed key in a flat key-value slot store.
package storage

import (
	"context"
	"sync"
)

// Slot is a flat string-keyed store. Each key holds one whole value;
// there are no partial updates.
type Slot interface {
	// Get returns the value stored under key.
	// ok is false if nothing is stored there.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error
}

// MemorySlot is a process-local Slot.
type MemorySlot struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemorySlot creates an empty MemorySlot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string]string)}
}

// Get implements Slot.
func (m *MemorySlot) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Slot.
func (m *MemorySlot) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
