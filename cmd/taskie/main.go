// Package main is the entry point for the taskie CLI.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"taskie/internal/cli"
	"taskie/internal/commands"
	"taskie/internal/config"
	"taskie/internal/remote"
	"taskie/internal/service"
	"taskie/internal/session"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newService)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// newService builds the HTTP client for the stored session, if any.
func newService(ctx context.Context, cfg *config.Config) (service.Service, error) {
	token, err := cfg.ReadToken()
	if err != nil && !errors.Is(err, config.ErrNoToken) {
		return nil, err
	}

	return remote.NewHTTP(remote.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		Session:   session.New(token),
		Logger:    newLogger(cfg),
	})
}

func newLogger(cfg *config.Config) logr.Logger {
	if cfg.Quiet && !cfg.Debug {
		return logr.Discard()
	}
	stdr.SetVerbosity(cfg.Verbosity)
	return stdr.New(log.New(os.Stderr, "taskie: ", log.LstdFlags)).WithName("http")
}
