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
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct {
	// Registry lists the commands to describe. Nil means DefaultRegistry.
	Registry *Registry
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	reg := c.Registry
	if reg == nil {
		reg = DefaultRegistry
	}
	fmt.Fprint(out, HelpText(reg))
	return exitcode.Success
}

// HelpText renders usage for every command in reg.
func HelpText(reg *Registry) string {
	cmds := reg.All()

	width := 0
	for _, cmd := range cmds {
		width = max(width, len(cmd.Usage()))
	}

	var b strings.Builder
	b.WriteString("Usage:\n")
	fmt.Fprintf(&b, "  %-*s  %s\n", width, "todo", "List tasks")
	for _, cmd := range cmds {
		line := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			line += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(&b, "  %-*s  %s\n", width, cmd.Usage(), line)
	}
	b.WriteString(commonFlagsText)
	return b.String()
}

const commonFlagsText = `
A <ref> is a task number from the listing (1 is the newest task) or a
task id, or an unambiguous id prefix of at least 4 characters. Digits
with a leading zero are always an id prefix.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
  --ephemeral      Keep tasks in memory only; nothing is saved
`
