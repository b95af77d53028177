package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"simpletodo/internal/config"
	"simpletodo/internal/exitcode"
	"simpletodo/internal/output"
	"simpletodo/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list`.
type ListCmd struct {
	long bool
	loc  *time.Location
}

// SetLong sets the long flag (for testing).
func (c *ListCmd) SetLong(long bool) {
	c.long = long
}

// SetLocation sets the time zone of creation times (for testing).
func (c *ListCmd) SetLocation(loc *time.Location) {
	c.loc = loc
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todo list [--long]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.long, "long", false, "")
	fs.BoolVar(&c.long, "l", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	tasks := svc.Tasks()
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	loc := c.loc
	if loc == nil {
		loc = time.Local
	}

	for i, t := range tasks {
		if c.long {
			output.FormatTaskLong(out, i+1, t, loc)
		} else {
			output.FormatTask(out, i+1, t)
		}
	}
	if c.long {
		output.FormatSummary(out, tasks)
	}

	return exitcode.Success
}
