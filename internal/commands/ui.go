package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"simpletodo/internal/config"
	"simpletodo/internal/exitcode"
	"simpletodo/internal/service"
	"simpletodo/internal/ui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command.
type UICmd struct {
	// In is the terminal input. Nil means os.Stdin.
	In io.Reader
}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return []string{"tui"} }
func (c *UICmd) Synopsis() string  { return "Open the interactive task list" }
func (c *UICmd) Usage() string     { return "todo ui" }
func (c *UICmd) NeedsStore() bool  { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	in := c.In
	if in == nil {
		in = os.Stdin
	}
	if err := ui.Run(ctx, svc, in, out); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
