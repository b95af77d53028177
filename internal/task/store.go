package task

import (
	"sync"
	"time"
)

// Observer receives the collection after every accepted mutation.
// It is called with the store locked, so it must not call back into the
// store; snapshots arrive in mutation order.
type Observer func(Collection)

// Store owns the current collection and serializes mutations.
//
// Unknown IDs are no-ops rather than errors: a UI may race a delete with
// another action on the same task.
type Store struct {
	mu       sync.Mutex
	tasks    Collection
	newID    IDFunc
	now      func() time.Time
	observer Observer
}

// Option configures a Store.
type Option func(*Store)

// WithIDFunc sets the identifier generator. Default is UUIDv7.
func WithIDFunc(fn IDFunc) Option {
	return func(s *Store) { s.newID = fn }
}

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithObserver registers fn to be told about every accepted mutation.
func WithObserver(fn Observer) Option {
	return func(s *Store) { s.observer = fn }
}

// NewStore creates a store holding a copy of initial.
func NewStore(initial Collection, opts ...Option) *Store {
	s := &Store{
		tasks: initial.Clone(),
		newID: UUIDv7,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current collection.
func (s *Store) Snapshot() Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Clone()
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Add prepends a new open task with the trimmed text.
// Returns false, and changes nothing, if the text is blank.
func (s *Store) Add(raw string) (Task, bool) {
	text, ok := NormalizeText(raw)
	if !ok {
		return Task{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Task{
		ID:        s.uniqueID(),
		Text:      text,
		Completed: false,
		CreatedAt: s.now().UnixMilli(),
	}
	s.commit(s.tasks.Prepend(t))
	return t, true
}

// Edit replaces the text of the task with id, keeping its position.
// Blank text abandons the edit.
func (s *Store) Edit(id, raw string) bool {
	text, ok := NormalizeText(raw)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := s.tasks.ReplaceText(id, text)
	if changed {
		s.commit(next)
	}
	return changed
}

// Toggle flips the completed flag of the task with id and returns the
// updated task.
func (s *Store) Toggle(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := s.tasks.Toggle(id)
	if !changed {
		return Task{}, false
	}
	s.commit(next)
	t, _ := next.Find(id)
	return t, true
}

// Delete removes the task with id.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := s.tasks.Remove(id)
	if changed {
		s.commit(next)
	}
	return changed
}

// DeleteCompleted removes all completed tasks and returns how many.
func (s *Store) DeleteCompleted() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, n := s.tasks.RemoveCompleted()
	if n > 0 {
		s.commit(next)
	}
	return n
}

// DeleteAll empties the collection and returns how many tasks it held.
func (s *Store) DeleteAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.tasks)
	if n > 0 {
		s.commit(Collection{})
	}
	return n
}

const maxIDAttempts = 16

// uniqueID draws IDs until one is unused. With a sound IDFunc the first
// draw always wins.
func (s *Store) uniqueID() string {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id != "" && s.tasks.Index(id) < 0 {
			return id
		}
	}
	panic("task: IDFunc keeps returning empty or used identifiers")
}

func (s *Store) commit(next Collection) {
	s.tasks = next
	if s.observer != nil {
		s.observer(next.Clone())
	}
}
