package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// TaskRef represents a parsed task reference.
//
// A long digit string can be read both ways, so Num and ID may both be
// set. Lookup then reports ambiguity if the readings name different
// tasks.
type TaskRef struct {
	Num int    // 1-based position in the listing, 0 if unset
	ID  string // task ID or ID prefix
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// MinIDPrefix is the shortest ID prefix accepted as a reference.
const MinIDPrefix = 4

// ParseTaskRef parses a task reference from the first arg.
//
// Parsing rules:
// 1. No args or a blank first arg → ErrTaskRefRequired
// 2. Digits with a leading zero, at least MinIDPrefix long → ID prefix only
// 3. Other digits → position in the listing (1 is the newest task), and
// also an ID prefix when at least MinIDPrefix long
// 4. Anything else of at least MinIDPrefix characters → task ID or ID prefix
// 5. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	ref := strings.TrimSpace(args[0])
	long := len(ref) >= MinIDPrefix

	if isAllDigits(ref) && (ref == "0" || ref[0] != '0') {
		num, err := strconv.Atoi(ref)
		switch {
		case err == nil && long:
			return TaskRef{Num: num, ID: ref}, nil
		case err == nil:
			return TaskRef{Num: num}, nil
		case !long:
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
		}
	}

	if !long || strings.ContainsFunc(ref, unicode.IsSpace) {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
	}
	return TaskRef{ID: ref}, nil
}

// String returns the reference as the user would type it.
func (r TaskRef) String() string {
	if r.ID != "" {
		return r.ID
	}
	return strconv.Itoa(r.Num)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
