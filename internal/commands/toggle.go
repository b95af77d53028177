package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"simpletodo/internal/config"
	"simpletodo/internal/exitcode"
	"simpletodo/internal/service"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Mark a task completed, or open again" }
func (c *ToggleCmd) Usage() string     { return "todo toggle <ref>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	t, code, ok := resolveTask(svc, args, errOut)
	if !ok {
		return code
	}

	// Another writer may have removed it since lookup.
	updated, ok := svc.Toggle(t.ID)
	if !ok {
		fmt.Fprintf(errOut, "error: task not found: %s\n", t.ID)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		if updated.Completed {
			fmt.Fprintln(out, "ok: completed")
		} else {
			fmt.Fprintln(out, "ok: reopened")
		}
	}
	return exitcode.Success
}
