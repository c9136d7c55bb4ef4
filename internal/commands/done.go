package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskie/internal/config"
	"taskie/internal/exitcode"
	"taskie/internal/result"
	"taskie/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string  { return "Mark tasks completed" }
func (c *DoneCmd) Usage() string     { return "taskie done <ref...>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runOnRefs(ctx, cfg, svc, args, out, errOut, svc.CompleteTask)
}

// refOp is a Service method taking a task id.
type refOp func(ctx context.Context, taskID string, done func(result.Result[string])) *service.Call

// runOnRefs is the shared implementation for done and rm. All refs are
// resolved first; the operation then runs on each id in order and stops at
// the first failure.
func runOnRefs(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer, op refOp) int {
	refs, err := ParseTaskRefs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	ids, err := newTaskLookup(svc).resolveAll(ctx, refs)
	if err != nil {
		var outOfRange errOutOfRange
		if errors.As(err, &outOfRange) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return reportFailure(errOut, err)
	}

	for _, id := range ids {
		r := service.Await(func(done func(result.Result[string])) *service.Call {
			return op(ctx, id, done)
		})
		if r.IsFailure() {
			return reportFailure(errOut, r.Err())
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
