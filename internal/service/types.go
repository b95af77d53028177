package service

import "simpletodo/internal/task"

// BulkAction is what a bulk delete removes.
type BulkAction int

const (
	// BulkNone means there is nothing to delete.
	BulkNone BulkAction = iota

	// BulkCompleted removes completed tasks only.
	BulkCompleted

	// BulkAll removes every task.
	BulkAll
)

// BulkPlan describes a bulk delete awaiting confirmation.
type BulkPlan struct {
	Action BulkAction
	Count  int // tasks that would be removed
}

// Title returns the heading shown when asking for confirmation.
func (p BulkPlan) Title() string {
	switch p.Action {
	case BulkCompleted:
		return "Delete Completed"
	case BulkAll:
		return "Delete All"
	default:
		return "Nothing to delete"
	}
}

// Prompt returns the confirmation question.
func (p BulkPlan) Prompt() string {
	switch p.Action {
	case BulkCompleted:
		return "Are you sure you want to delete all completed tasks?"
	case BulkAll:
		return "Are you sure you want to delete ALL tasks?"
	default:
		return ""
	}
}

// PlanBulkDelete chooses the bulk delete for the collection: completed
// tasks if there are any, otherwise everything. forceAll always chooses
// everything.
func PlanBulkDelete(c task.Collection, forceAll bool) BulkPlan {
	if len(c) == 0 {
		return BulkPlan{Action: BulkNone}
	}
	if !forceAll {
		if n := c.CompletedCount(); n > 0 {
			return BulkPlan{Action: BulkCompleted, Count: n}
		}
	}
	return BulkPlan{Action: BulkAll, Count: len(c)}
}

// ApplyBulkDelete carries out p and returns how many tasks were removed.
func ApplyBulkDelete(svc Service, p BulkPlan) int {
	switch p.Action {
	case BulkCompleted:
		return svc.DeleteCompleted()
	case BulkAll:
		return svc.DeleteAll()
	default:
		return 0
	}
}
