package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskie/internal/config"
	"taskie/internal/exitcode"
	"taskie/internal/model"
	"taskie/internal/output"
	"taskie/internal/result"
	"taskie/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	priority int
	content  string
}

// SetPriority sets the priority (for testing).
func (c *AddCmd) SetPriority(p int) {
	c.priority = p
}

// SetContent sets the task content (for testing).
func (c *AddCmd) SetContent(content string) {
	c.content = content
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskie add [--priority <n>] [--content <text>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.priority, "priority", 0, "")
	fs.IntVar(&c.priority, "p", 0, "")
	fs.StringVar(&c.content, "content", "", "")
	fs.StringVar(&c.content, "c", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// Join args to form title
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	if c.priority < 0 {
		fmt.Fprintf(errOut, "error: invalid priority: %d\n", c.priority)
		return exitcode.UserError
	}

	req := model.AddTaskRequest{Title: title, Content: c.content, Priority: c.priority}
	r := service.Await(func(done func(result.Result[model.Task])) *service.Call {
		return svc.AddTask(ctx, req, done)
	})
	task, err := r.Get()
	if err != nil {
		return reportFailure(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatTaskCreated(out, task)
	}
	return exitcode.Success
}
