package task

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDFunc returns a new task identifier. Every call must return a value
// never returned before, including calls within the same millisecond.
type IDFunc func() string

// UUIDv7 returns time-ordered UUIDs with a random tail.
func UUIDv7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Sequence returns an IDFunc yielding prefix1, prefix2, ...
func Sequence(prefix string) IDFunc {
	var n atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s%d", prefix, n.Add(1))
	}
}
