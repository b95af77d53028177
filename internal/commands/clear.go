package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"simpletodo/internal/config"
	"simpletodo/internal/exitcode"
	"simpletodo/internal/output"
	"simpletodo/internal/service"
)

func init() {
	Register(&ClearCmd{})
}

// ClearCmd implements the clear command.
//
// Without --all it deletes completed tasks if there are any, otherwise
// every task. Nothing is deleted without --force.
type ClearCmd struct {
	all   bool
	force bool
}

// SetAll sets the all flag (for testing).
func (c *ClearCmd) SetAll(all bool) {
	c.all = all
}

// SetForce sets the force flag (for testing).
func (c *ClearCmd) SetForce(force bool) {
	c.force = force
}

func (c *ClearCmd) Name() string      { return "clear" }
func (c *ClearCmd) Aliases() []string { return nil }
func (c *ClearCmd) Synopsis() string  { return "Delete completed tasks, or all tasks" }
func (c *ClearCmd) Usage() string     { return "todo clear [--all] [--force]" }
func (c *ClearCmd) NeedsStore() bool  { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	plan := service.PlanBulkDelete(svc.Tasks(), c.all)
	if plan.Action == service.BulkNone {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks to delete")
		}
		return exitcode.Success
	}

	if !c.force {
		fmt.Fprintf(errOut, "error: would delete %s (use --force)\n", describePlan(plan))
		return exitcode.UserError
	}

	n := service.ApplyBulkDelete(svc, plan)

	if !cfg.Quiet {
		fmt.Fprintf(out, "deleted %s\n", output.Plural(n, "task"))
	}
	return exitcode.Success
}

func describePlan(p service.BulkPlan) string {
	if p.Action == service.BulkCompleted {
		return output.Plural(p.Count, "completed task")
	}
	if p.Count == 1 {
		return "the only task"
	}
	return fmt.Sprintf("all %d tasks", p.Count)
}
