// Package local implements service.Service on a task store persisted to a
// local storage slot.
package local

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"simpletodo/internal/config"
	"simpletodo/internal/storage"
	"simpletodo/internal/task"
)

// Backend implements service.Service.
//
// The collection is loaded once when the backend is created. Every
// accepted mutation hands the new collection to a background saver.
type Backend struct {
	store   *task.Store
	saver   *storage.Saver
	adapter *storage.Adapter
	logger  *log.Logger
}

// New creates a backend from config: a file slot in cfg.DataDir, or a
// memory slot when cfg.Ephemeral is set.
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Backend, error) {
	var slot storage.Slot
	if cfg.Ephemeral {
		slot = storage.NewMemorySlot()
	} else {
		fileSlot, err := storage.NewFileSlot(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		slot = fileSlot
	}
	return NewWithSlot(ctx, slot, cfg.StorageKey, logger), nil
}

// NewWithSlot creates a backend on an existing slot.
// opts are passed to the task store.
func NewWithSlot(ctx context.Context, slot storage.Slot, key string, logger *log.Logger, opts ...task.Option) *Backend {
	adapter := storage.NewAdapter(slot, key, logger)
	saver := storage.NewSaver(adapter, logger)

	initial := adapter.Load(ctx)
	opts = append(opts, task.WithObserver(saver.Enqueue))

	return &Backend{
		store:   task.NewStore(initial, opts...),
		saver:   saver,
		adapter: adapter,
		logger:  logger,
	}
}

// Tasks implements service.Service.
func (b *Backend) Tasks() task.Collection {
	return b.store.Snapshot()
}

// Add implements service.Service.
func (b *Backend) Add(text string) (task.Task, bool) {
	t, ok := b.store.Add(text)
	if ok {
		b.logger.Debug("added task", "id", t.ID)
	}
	return t, ok
}

// Edit implements service.Service.
func (b *Backend) Edit(id, text string) bool {
	ok := b.store.Edit(id, text)
	if ok {
		b.logger.Debug("edited task", "id", id)
	}
	return ok
}

// Toggle implements service.Service.
func (b *Backend) Toggle(id string) (task.Task, bool) {
	t, ok := b.store.Toggle(id)
	if ok {
		b.logger.Debug("toggled task", "id", id, "completed", t.Completed)
	}
	return t, ok
}

// Delete implements service.Service.
func (b *Backend) Delete(id string) bool {
	ok := b.store.Delete(id)
	if ok {
		b.logger.Debug("deleted task", "id", id)
	}
	return ok
}

// DeleteCompleted implements service.Service.
func (b *Backend) DeleteCompleted() int {
	n := b.store.DeleteCompleted()
	b.logger.Debug("deleted completed tasks", "count", n)
	return n
}

// DeleteAll implements service.Service.
func (b *Backend) DeleteAll() int {
	n := b.store.DeleteAll()
	b.logger.Debug("deleted all tasks", "count", n)
	return n
}

// Close implements service.Service.
func (b *Backend) Close(ctx context.Context) error {
	if err := b.saver.Close(ctx); err != nil {
		b.logger.Warn("pending save not finished", "key", b.adapter.Key(), "err", err)
		return err
	}
	return nil
}
