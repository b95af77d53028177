// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"
)

// ErrSlotUnavailable is a stock storage failure for error injection.
var ErrSlotUnavailable = errors.New("storage unavailable")

// FakeSlot is an in-memory storage.Slot with error injection and a
// record of every write.
type FakeSlot struct {
	mu     sync.Mutex
	values map[string]string
	sets   []string // keys in write order

	// Error injection for testing
	GetErr    error
	SetErr    error
	SetErrFor map[string]error // key -> error

	// SetHook, if set, runs before each write while no lock is held.
	SetHook func(key string)
}

// NewFakeSlot creates an empty FakeSlot.
func NewFakeSlot() *FakeSlot {
	return &FakeSlot{
		values:    make(map[string]string),
		SetErrFor: make(map[string]error),
	}
}

// Put stores a value directly, bypassing error injection.
func (f *FakeSlot) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}

// Value returns the stored value for key.
func (f *FakeSlot) Value(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

// Sets returns the keys written so far, in order.
func (f *FakeSlot) Sets() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sets))
	copy(out, f.sets)
	return out
}

// Get implements storage.Slot.
func (f *FakeSlot) Get(ctx context.Context, key string) (string, bool, error) {
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok, nil
}

// Set implements storage.Slot.
func (f *FakeSlot) Set(ctx context.Context, key, value string) error {
	if f.SetHook != nil {
		f.SetHook(key)
	}
	if f.SetErr != nil {
		return f.SetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.SetErrFor[key]; err != nil {
		return err
	}
	f.values[key] = value
	f.sets = append(f.sets, key)
	return nil
}
