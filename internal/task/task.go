// Package task defines the task record, the ordered task collection and
// the store that owns it.
package task

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// maxMillis is the largest timestamp a JavaScript Date can hold.
const maxMillis = 8.64e15

// Task is a single to-do record.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"` // Unix milliseconds
}

// Created returns CreatedAt as a time.Time.
func (t Task) Created() time.Time {
	return time.UnixMilli(t.CreatedAt)
}

// UnmarshalJSON accepts createdAt in any JSON number form, such as
// 1.7605206e12, and truncates it to whole milliseconds.
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var v struct {
		plain
		CreatedAt json.Number `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = Task(v.plain)
	if v.CreatedAt == "" {
		t.CreatedAt = 0
		return nil
	}
	ms, err := parseMillis(v.CreatedAt)
	if err != nil {
		return err
	}
	t.CreatedAt = ms
	return nil
}

func parseMillis(n json.Number) (int64, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.Abs(f) > maxMillis {
		return 0, fmt.Errorf("createdAt out of range: %s", n)
	}
	return int64(math.Trunc(f)), nil
}

// NormalizeText trims raw task text.
// Returns false if nothing but whitespace is left.
func NormalizeText(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	return text, text != ""
}

// Collection is an ordered, newest-first list of tasks with unique IDs.
//
// Methods never modify the receiver; transitions return a new slice.
type Collection []Task

// Clone returns a copy of c. A nil collection clones to an empty one.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Index returns the position of the task with id, or -1.
func (c Collection) Index(id string) int {
	for i, t := range c {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the task with id.
func (c Collection) Find(id string) (Task, bool) {
	if i := c.Index(id); i >= 0 {
		return c[i], true
	}
	return Task{}, false
}

// CompletedCount returns the number of completed tasks.
func (c Collection) CompletedCount() int {
	n := 0
	for _, t := range c {
		if t.Completed {
			n++
		}
	}
	return n
}

// Equal reports whether c and o hold the same tasks in the same order.
func (c Collection) Equal(o Collection) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

// Prepend returns a collection with t at position 0.
func (c Collection) Prepend(t Task) Collection {
	out := make(Collection, 0, len(c)+1)
	out = append(out, t)
	return append(out, c...)
}

// ReplaceText sets the text of the task with id.
// The text must already be normalized.
func (c Collection) ReplaceText(id, text string) (Collection, bool) {
	i := c.Index(id)
	if i < 0 || c[i].Text == text {
		return c, false
	}
	out := c.Clone()
	out[i].Text = text
	return out, true
}

// Toggle flips the completed flag of the task with id.
func (c Collection) Toggle(id string) (Collection, bool) {
	i := c.Index(id)
	if i < 0 {
		return c, false
	}
	out := c.Clone()
	out[i].Completed = !out[i].Completed
	return out, true
}

// Remove drops the task with id.
func (c Collection) Remove(id string) (Collection, bool) {
	i := c.Index(id)
	if i < 0 {
		return c, false
	}
	out := make(Collection, 0, len(c)-1)
	out = append(out, c[:i]...)
	return append(out, c[i+1:]...), true
}

// RemoveCompleted drops every completed task and returns how many were
// dropped. Open tasks keep their relative order.
func (c Collection) RemoveCompleted() (Collection, int) {
	out := make(Collection, 0, len(c))
	for _, t := range c {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out, len(c) - len(out)
}

// Normalize trims the text of every task and drops tasks whose text is
// blank. Returns the number of tasks dropped.
func (c Collection) Normalize() (Collection, int) {
	out := make(Collection, 0, len(c))
	for _, t := range c {
		text, ok := NormalizeText(t.Text)
		if !ok {
			continue
		}
		t.Text = text
		out = append(out, t)
	}
	return out, len(c) - len(out)
}

// Dedupe drops tasks whose ID already appeared earlier in c.
// Returns the number of tasks dropped.
func (c Collection) Dedupe() (Collection, int) {
	seen := make(map[string]struct{}, len(c))
	out := make(Collection, 0, len(c))
	for _, t := range c {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out, len(c) - len(out)
}
