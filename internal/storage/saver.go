package storage

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"simpletodo/internal/task"
)

// Saver writes collections in the background.
//
// Enqueue never blocks on storage. Snapshots that have not been picked up
// yet are replaced by newer ones, so the slot ends up holding the latest
// collection (last write wins).
type Saver struct {
	adapter *Adapter
	logger  *log.Logger

	mu      sync.Mutex
	idle    *sync.Cond
	pending task.Collection
	dirty   bool
	busy    bool
	closed  bool
	wake    chan struct{}
	done    chan struct{}
}

// NewSaver starts a Saver writing through adapter.
func NewSaver(adapter *Adapter, logger *log.Logger) *Saver {
	s := &Saver{
		adapter: adapter,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	s.idle = sync.NewCond(&s.mu)
	go s.run()
	return s
}

// Enqueue schedules c to be saved.
func (s *Saver) Enqueue(c task.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.logger.Warn("save dropped after close", "count", len(c))
		return
	}
	s.pending = c.Clone()
	s.dirty = true
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Flush waits until every enqueued collection has been written or ctx is
// done.
func (s *Saver) Flush(ctx context.Context) error {
	// Wake the wait loop below when ctx ends.
	stop := context.AfterFunc(ctx, func() {
		s.mu.Lock()
		s.idle.Broadcast()
		s.mu.Unlock()
	})
	defer stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	for s.dirty || s.busy {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.idle.Wait()
	}
	return nil
}

// Close flushes and stops the background writer. Later Enqueue calls are
// dropped.
func (s *Saver) Close(ctx context.Context) error {
	err := s.Flush(ctx)

	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.wake)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Saver) run() {
	defer close(s.done)
	for range s.wake {
		s.drain()
	}
	s.drain()
}

func (s *Saver) drain() {
	for {
		s.mu.Lock()
		if !s.dirty {
			s.busy = false
			s.idle.Broadcast()
			s.mu.Unlock()
			return
		}
		c := s.pending
		s.pending = nil
		s.dirty = false
		s.busy = true
		s.mu.Unlock()

		s.adapter.Save(context.Background(), c)
	}
}
