// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"

	"simpletodo/internal/task"
)

// Service defines the interface the presentation layers use.
// Commands and the TUI never import storage directly.
//
// Mutations report whether they were applied. Blank text and unknown IDs
// are not errors; the call simply changes nothing.
type Service interface {
	// Tasks returns the collection, newest first.
	Tasks() task.Collection

	// Add creates an open task at the front of the collection.
	Add(text string) (task.Task, bool)

	// Edit replaces the text of a task, keeping its position.
	Edit(id, text string) bool

	// Toggle flips a task's completed flag and returns the updated task.
	Toggle(id string) (task.Task, bool)

	// Delete removes a task.
	Delete(id string) bool

	// DeleteCompleted removes every completed task and returns how many.
	DeleteCompleted() int

	// DeleteAll removes every task and returns how many.
	DeleteAll() int

	// Close waits for pending saves, bounded by ctx, and releases
	// resources.
	Close(ctx context.Context) error
}
