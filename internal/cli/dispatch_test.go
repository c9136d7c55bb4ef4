package cli_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"taskie/internal/api"
	"taskie/internal/cli"
	"taskie/internal/commands"
	"taskie/internal/config"
	"taskie/internal/exitcode"
	"taskie/internal/remote"
	"taskie/internal/service"
	"taskie/internal/session"
	"taskie/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// backendFactory wires the real client to a FakeBackend, the way main does.
func backendFactory(backend *testutil.FakeBackend) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		token, err := cfg.ReadToken()
		if err != nil && !errors.Is(err, config.ErrNoToken) {
			return nil, err
		}
		return remote.NewHTTP(remote.Options{
			BaseURL: backend.URL(),
			Session: session.New(token),
			Logger:  logr.Discard(),
		})
	}
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{config.EnvBaseURL, config.EnvTimeout, config.EnvVerbosity} {
		t.Setenv(k, "")
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	clearEnv(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	stdout, stderr, code := run(t, dispatcher, "help", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	clearEnv(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	stdout, stderr, code := run(t, dispatcher, "version", "--config", t.TempDir())

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskie 0.1.0\n" {
		t.Errorf("expected 'taskie 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NotLoggedIn(t *testing.T) {
	clearEnv(t)
	svc := testutil.NewFakeService()
	svc.AddOpenTask("t1", "hidden")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, stderr, code := run(t, dispatcher, "list", "--config", t.TempDir())

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: not logged in (run: taskie login)\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, _ := config.New("")
	if err := cfg.WriteToken("tok"); err != nil {
		t.Fatal(err)
	}

	svc := testutil.NewFakeService()
	svc.AddOpenTask("t1", "Buy milk")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, stderr, code := run(t, dispatcher)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "   1  Buy milk\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestDispatcher_BadConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvTimeout, "forever")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, dispatcher, "help", "--config", t.TempDir())

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: "+config.EnvTimeout) {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	clearEnv(t)
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("parse base url: missing host")
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	_, stderr, code := run(t, dispatcher, "register", "--config", t.TempDir())

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: parse base url: missing host\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_EndToEnd(t *testing.T) {
	clearEnv(t)
	backend := testutil.NewFakeBackend(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, backendFactory(backend))
	dir := t.TempDir()

	step := func(want int, args ...string) string {
		t.Helper()
		// Flags must precede positional args.
		args = append([]string{args[0], "--config", dir}, args[1:]...)
		stdout, stderr, code := run(t, dispatcher, args...)
		if code != want {
			t.Fatalf("%v: expected exit code %d, got %d (stderr %q)", args, want, code, stderr)
		}
		return stdout
	}

	step(exitcode.Success, "register", "--name", "Ada", "--email", "ada@example.com", "--password", "pw")
	step(exitcode.AuthError, "login", "--email", "ada@example.com", "--password", "wrong")
	step(exitcode.Success, "login", "--email", "ada@example.com", "--password", "pw")

	step(exitcode.Success, "add", "--priority", "2", "Buy", "milk")
	step(exitcode.Success, "add", "--content", "soon", "Call", "mom")

	if out := step(exitcode.Success, "list"); out != "   1  Buy milk  !!\n   2  Call mom\n" {
		t.Errorf("unexpected list output %q", out)
	}

	step(exitcode.Success, "done", "1")
	if out := step(exitcode.Success, "list"); out != "   1  Call mom\n" {
		t.Errorf("unexpected list output after done %q", out)
	}

	if out := step(exitcode.Success, "profile"); !strings.Contains(out, "ada@example.com") || !strings.Contains(out, "1 task") {
		t.Errorf("unexpected profile output:\n%s", out)
	}

	step(exitcode.Success, "rm", "1")
	if out := step(exitcode.Success, "list", "--quiet"); out != "" {
		t.Errorf("expected empty list, got %q", out)
	}
	step(exitcode.UserError, "done", "1")

	// Every authenticated call carried the stored token.
	for _, r := range backend.Requests() {
		if r.Endpoint == api.RegisterUser.Name || r.Endpoint == api.LoginUser.Name {
			if r.HasAuth {
				t.Errorf("%s should be sent without Authorization", r.Endpoint)
			}
			continue
		}
		if r.Authorization == "" {
			t.Errorf("%s was sent without Authorization", r.Endpoint)
		}
	}

	step(exitcode.Success, "logout")
	step(exitcode.AuthError, "list")
}
