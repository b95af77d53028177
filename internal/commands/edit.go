package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"simpletodo/internal/config"
	"simpletodo/internal/exitcode"
	"simpletodo/internal/service"
	"simpletodo/internal/task"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change the text of a task" }
func (c *EditCmd) Usage() string     { return "todo edit <ref> <text...>" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	t, code, ok := resolveTask(svc, args, errOut)
	if !ok {
		return code
	}

	text := strings.Join(args[1:], " ")
	if _, ok := task.NormalizeText(text); !ok {
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	svc.Edit(t.ID, text)

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
