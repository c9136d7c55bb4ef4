package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskie/internal/config"
	"taskie/internal/exitcode"
	"taskie/internal/model"
	"taskie/internal/output"
	"taskie/internal/result"
	"taskie/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskie` (no args) and `taskie list`.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List open tasks" }
func (c *ListCmd) Usage() string     { return "taskie list" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	r := service.Await(func(done func(result.Result[[]model.Task])) *service.Call {
		return svc.GetTasks(ctx, done)
	})
	tasks, err := r.Get()
	if err != nil {
		return reportFailure(errOut, err)
	}

	for i, task := range tasks {
		output.FormatTask(out, i+1, task)
	}
	if len(tasks) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
