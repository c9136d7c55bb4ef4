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
	"taskie/internal/result"
	"taskie/internal/service"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	name     string
	email    string
	password string
}

// SetCredentials sets the account fields (for testing).
func (c *RegisterCmd) SetCredentials(name, email, password string) {
	c.name, c.email, c.password = name, email, password
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string {
	return "taskie register --name <name> --email <email> --password <password>"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if strings.TrimSpace(c.email) == "" || c.password == "" {
		fmt.Fprintln(errOut, "error: --email and --password are required")
		return exitcode.UserError
	}

	req := model.RegisterRequest{Name: strings.TrimSpace(c.name), Email: strings.TrimSpace(c.email), Password: c.password}
	r := service.Await(func(done func(result.Result[string])) *service.Call {
		return svc.RegisterUser(ctx, req, done)
	})
	msg, err := r.Get()
	if err != nil {
		return reportFailure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, msg)
	}
	return exitcode.Success
}
