package testutil

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"simpletodo/internal/backend/local"
	"simpletodo/internal/logging"
	"simpletodo/internal/storage"
	"simpletodo/internal/task"
)

// Now is the fixed clock used by NewService.
var Now = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

// Seed stores tasks in slot under the default key, as a previous run
// would have.
func Seed(t *testing.T, slot *FakeSlot, tasks ...task.Task) {
	t.Helper()
	c := task.Collection(tasks).Clone()
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("failed to seed tasks: %v", err)
	}
	slot.Put(storage.DefaultKey, string(data))
}

// NewService creates a local backend over a FakeSlot seeded with tasks.
// New tasks get IDs t1, t2, ... and CreatedAt from Now.
// The backend is closed when the test ends.
func NewService(t *testing.T, tasks ...task.Task) (*local.Backend, *FakeSlot) {
	t.Helper()

	slot := NewFakeSlot()
	if len(tasks) > 0 {
		Seed(t, slot, tasks...)
	}

	svc := local.NewWithSlot(context.Background(), slot, "", logging.Discard(),
		task.WithIDFunc(task.Sequence("t")),
		task.WithClock(func() time.Time { return Now }),
	)
	t.Cleanup(func() {
		_ = svc.Close(context.Background())
	})
	return svc, slot
}

// Saved flushes svc and returns the collection stored in slot.
func Saved(t *testing.T, svc *local.Backend, slot *FakeSlot) task.Collection {
	t.Helper()
	if err := svc.Close(context.Background()); err != nil {
		t.Fatalf("failed to flush: %v", err)
	}
	raw, ok := slot.Value(storage.DefaultKey)
	if !ok {
		return nil
	}
	var c task.Collection
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("stored value is not a collection: %v", err)
	}
	return c
}
