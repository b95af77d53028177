package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"simpletodo/internal/exitcode"
	"simpletodo/internal/service"
	"simpletodo/internal/task"
)

// Lookup errors.
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrAmbiguousRef = errors.New("ambiguous task reference")
)

// findTask resolves ref against c, the collection as listed.
// An exact ID match wins over prefix matches. When ref has both a number
// and an ID reading that name different tasks, the reference is
// ambiguous.
func findTask(c task.Collection, ref TaskRef) (task.Task, error) {
	if ref.ID == "" {
		return findByNum(c, ref.Num)
	}

	byID, err := findByID(c, ref.ID)
	if ref.Num == 0 || errors.Is(err, ErrAmbiguousRef) {
		return byID, err
	}

	byNum, numErr := findByNum(c, ref.Num)
	switch {
	case err != nil && numErr != nil:
		return task.Task{}, err
	case err != nil:
		return byNum, nil
	case numErr != nil || byNum.ID == byID.ID:
		return byID, nil
	default:
		return task.Task{}, fmt.Errorf("%w: %s", ErrAmbiguousRef, ref.ID)
	}
}

func findByNum(c task.Collection, num int) (task.Task, error) {
	if num < 1 || num > len(c) {
		return task.Task{}, fmt.Errorf("%w: task number out of range: %d", ErrTaskNotFound, num)
	}
	return c[num-1], nil
}

func findByID(c task.Collection, id string) (task.Task, error) {
	if t, ok := c.Find(id); ok {
		return t, nil
	}

	var matches []task.Task
	for _, t := range c {
		if strings.HasPrefix(t.ID, id) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return task.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return task.Task{}, fmt.Errorf("%w: %s", ErrAmbiguousRef, id)
	}
}

// resolveTask parses the reference in args and finds the task in svc's
// current listing. On failure it prints the error and returns the exit
// code to use.
func resolveTask(svc service.Service, args []string, errOut io.Writer) (task.Task, int, bool) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, exitcode.UserError, false
	}

	t, err := findTask(svc.Tasks(), ref)
	switch {
	case err == nil:
		return t, exitcode.Success, true
	case errors.Is(err, ErrAmbiguousRef):
		fmt.Fprintf(errOut, "error: ambiguous task reference: %s\n", ref)
	case ref.ID == "":
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", ref.Num)
	default:
		fmt.Fprintf(errOut, "error: task not found: %s\n", ref)
	}
	return task.Task{}, exitcode.UserError, false
}
