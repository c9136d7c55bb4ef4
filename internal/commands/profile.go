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
	Register(&ProfileCmd{})
}

// ProfileCmd implements the profile command.
type ProfileCmd struct{}

func (c *ProfileCmd) Name() string      { return "profile" }
func (c *ProfileCmd) Aliases() []string { return []string{"whoami"} }
func (c *ProfileCmd) Synopsis() string  { return "Show the signed-in user" }
func (c *ProfileCmd) Usage() string     { return "taskie profile" }
func (c *ProfileCmd) NeedsAuth() bool   { return true }

func (c *ProfileCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ProfileCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	r := service.Await(func(done func(result.Result[model.UserProfile])) *service.Call {
		return svc.GetUserProfile(ctx, done)
	})
	profile, err := r.Get()
	if err != nil {
		return reportFailure(errOut, err)
	}

	output.FormatProfile(out, profile)
	return exitcode.Success
}
