package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskie/internal/config"
	"taskie/internal/exitcode"
	"taskie/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskie help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskie                                             List open tasks
  taskie list [common flags]
  taskie add [common flags] [--priority <n>] [--content <text>] <title...>
  taskie done [common flags] <ref...>
  taskie rm [common flags] <ref...>
  taskie profile [common flags]
  taskie register [common flags] --name <name> --email <email> --password <password>
  taskie login [common flags] --email <email> --password <password>
  taskie logout [common flags]
  taskie help
  taskie version

A <ref> is a task number from 'taskie list' or a task id.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
