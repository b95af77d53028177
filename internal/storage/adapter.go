package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"simpletodo/internal/task"
)

// DefaultKey is the slot key holding the task collection.
const DefaultKey = "@simple_todo_app_data"

// CorruptSuffix is appended to the key to preserve an unreadable value.
const CorruptSuffix = ".corrupt"

// Adapter saves and loads the whole task collection under one key.
//
// Neither operation returns an error: failures are logged and the
// in-memory collection stays authoritative.
type Adapter struct {
	slot   Slot
	key    string
	logger *log.Logger
}

// NewAdapter creates an Adapter for key in slot. An empty key means
// DefaultKey.
func NewAdapter(slot Slot, key string, logger *log.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{slot: slot, key: key, logger: logger}
}

// Key returns the slot key.
func (a *Adapter) Key() string {
	return a.key
}

// Save overwrites the slot with the complete collection.
// Reports whether the write succeeded.
func (a *Adapter) Save(ctx context.Context, c task.Collection) bool {
	if c == nil {
		c = task.Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		a.logger.Error("failed to save tasks", "key", a.key, "err", fmt.Errorf("marshal: %w", err))
		return false
	}
	if err := a.slot.Set(ctx, a.key, string(data)); err != nil {
		a.logger.Error("failed to save tasks", "key", a.key, "err", err)
		return false
	}
	a.logger.Debug("saved tasks", "key", a.key, "count", len(c))
	return true
}

// Load reads the collection from the slot.
//
// A missing value is the first-run state and yields an empty collection.
// An unreadable or invalid value also yields an empty collection; the raw
// value is copied to key+CorruptSuffix first so it is not lost to the
// next Save. Task text is trimmed and tasks with blank text are dropped.
// Duplicate IDs are dropped, keeping the first occurrence.
func (a *Adapter) Load(ctx context.Context) task.Collection {
	raw, ok, err := a.slot.Get(ctx, a.key)
	if err != nil {
		a.logger.Error("failed to load tasks", "key", a.key, "err", err)
		return task.Collection{}
	}
	if !ok {
		a.logger.Debug("no saved tasks", "key", a.key)
		return task.Collection{}
	}

	c, err := decodeCollection([]byte(raw))
	if err != nil {
		a.logger.Error("failed to load tasks", "key", a.key, "err", err)
		a.quarantine(ctx, raw)
		return task.Collection{}
	}

	c, blank := c.Normalize()
	if blank > 0 {
		a.logger.Warn("dropped tasks with blank text", "key", a.key, "count", blank)
	}
	c, dropped := c.Dedupe()
	if dropped > 0 {
		a.logger.Warn("dropped tasks with duplicate ids", "key", a.key, "count", dropped)
	}
	a.logger.Debug("loaded tasks", "key", a.key, "count", len(c))
	return c
}

func (a *Adapter) quarantine(ctx context.Context, raw string) {
	key := a.key + CorruptSuffix
	if err := a.slot.Set(ctx, key, raw); err != nil {
		a.logger.Warn("failed to preserve unreadable tasks", "key", key, "err", err)
		return
	}
	a.logger.Warn("preserved unreadable tasks", "key", key)
}

func decodeCollection(data []byte) (task.Collection, error) {
	if err := validateCollection(data); err != nil {
		return nil, err
	}
	var c task.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if c == nil {
		c = task.Collection{}
	}
	return c, nil
}
