// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"simpletodo/internal/task"
)

// TimeLayout is used for creation times in long listings.
const TimeLayout = "2006-01-02 15:04"

// FormatTask formats a task line.
// Format: "{N:>4}  [{x| }] {TEXT}\n"
func FormatTask(w io.Writer, num int, t task.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, checkbox(t), normalizeText(t.Text))
}

// FormatTaskLong formats a task line followed by an indented line with
// its ID and creation time in loc.
func FormatTaskLong(w io.Writer, num int, t task.Task, loc *time.Location) {
	FormatTask(w, num, t)
	fmt.Fprintf(w, "          id: %s  created: %s\n", t.ID, t.Created().In(loc).Format(TimeLayout))
}

// FormatSummary formats the count line printed under a listing.
func FormatSummary(w io.Writer, c task.Collection) {
	done := c.CompletedCount()
	fmt.Fprintf(w, "%s, %d completed\n", Plural(len(c), "task"), done)
}

// Plural returns "1 task", "2 tasks", ...
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func checkbox(t task.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

// normalizeText normalizes task text for display.
// Newlines are replaced with spaces.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
