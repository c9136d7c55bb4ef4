// Package remote implements service.Service against the Taskie REST API.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"taskie/internal/api"
	"taskie/internal/model"
	"taskie/internal/result"
	"taskie/internal/service"
	"taskie/internal/session"
	"taskie/internal/transport"
)

// Client dispatches each operation off the caller's goroutine and maps the
// outcome into a result.Result.
type Client struct {
	api     api.Service
	session *session.Store
	log     logr.Logger
}

// Ensure Client implements service.Service at compile time.
var _ service.Service = (*Client)(nil)

// Options configures NewHTTP.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Session   *session.Store
	Logger    logr.Logger

	// Base is the underlying transport (for testing).
	Base http.RoundTripper
}

// New creates a Client over an api.Service. sess may be nil.
func New(svc api.Service, sess *session.Store, log logr.Logger) *Client {
	if sess == nil {
		sess = session.New("")
	}
	return &Client{api: svc, session: sess, log: log}
}

// NewHTTP builds the transport and HTTP service and returns a Client.
func NewHTTP(opts Options) (*Client, error) {
	sess := opts.Session
	if sess == nil {
		sess = session.New("")
	}
	httpClient := transport.Build(transport.Options{
		Timeout:   opts.Timeout,
		Session:   sess,
		Logger:    opts.Logger,
		UserAgent: opts.UserAgent,
		Base:      opts.Base,
	})
	svc, err := api.New(httpClient, opts.BaseURL)
	if err != nil {
		return nil, err
	}
	return New(svc, sess, opts.Logger), nil
}

// Session returns the token store consulted on every request.
func (c *Client) Session() *session.Store {
	return c.session
}

func (c *Client) RegisterUser(ctx context.Context, req model.RegisterRequest, done func(result.Result[string])) *service.Call {
	return service.Go(ctx, func(ctx context.Context) result.Result[string] {
		resp, err := c.api.RegisterUser(ctx, req)
		if err != nil {
			return result.Failure[string](err)
		}
		if resp == nil {
			return result.Failure[string](noBody(api.RegisterUser))
		}
		return result.Success(resp.Message)
	}, done)
}

func (c *Client) LoginUser(ctx context.Context, req model.LoginRequest, done func(result.Result[string])) *service.Call {
	return service.Go(ctx, func(ctx context.Context) result.Result[string] {
		resp, err := c.api.LoginUser(ctx, req)
		if err != nil {
			return result.Failure[string](err)
		}
		if resp == nil || strings.TrimSpace(resp.Token) == "" {
			return result.Failure[string](noBody(api.LoginUser))
		}
		c.session.Set(resp.Token)
		c.log.V(1).Info("logged in", "email", req.Email)
		return result.Success(resp.Token)
	}, done)
}

func (c *Client) GetTasks(ctx context.Context, done func(result.Result[[]model.Task])) *service.Call {
	return service.Go(ctx, c.tasks, done)
}

func (c *Client) AddTask(ctx context.Context, req model.AddTaskRequest, done func(result.Result[model.Task])) *service.Call {
	return service.Go(ctx, func(ctx context.Context) result.Result[model.Task] {
		task, err := c.api.AddTask(ctx, req)
		if err != nil {
			return result.Failure[model.Task](err)
		}
		if task == nil || strings.TrimSpace(task.ID) == "" {
			return result.Failure[model.Task](noBody(api.AddTask))
		}
		return result.Success(*task)
	}, done)
}

func (c *Client) CompleteTask(ctx context.Context, taskID string, done func(result.Result[string])) *service.Call {
	return service.Go(ctx, func(ctx context.Context) result.Result[string] {
		resp, err := c.api.CompleteTask(ctx, taskID)
		return messageResult(api.CompleteTask, resp, err)
	}, done)
}

// DeleteTask follows the general mapping rules; the backend's handling of
// this endpoint has varied, so nothing about its reply is special-cased.
func (c *Client) DeleteTask(ctx context.Context, taskID string, done func(result.Result[string])) *service.Call {
	return service.Go(ctx, func(ctx context.Context) result.Result[string] {
		resp, err := c.api.DeleteTask(ctx, taskID)
		return messageResult(api.DeleteTask, resp, err)
	}, done)
}

// GetUserProfile fetches tasks first and the profile second. A task
// failure other than ErrNoResponseBody ends the call without contacting
// the profile endpoint. A profile failure is returned as is.
func (c *Client) GetUserProfile(ctx context.Context, done func(result.Result[model.UserProfile])) *service.Call {
	return service.Go(ctx, func(ctx context.Context) result.Result[model.UserProfile] {
		count := 0
		tasks := c.tasks(ctx)
		if open, ok := tasks.Data(); ok {
			count = len(open)
		} else if err := tasks.Err(); !errors.Is(err, api.ErrNoResponseBody) {
			return result.Failure[model.UserProfile](&api.PassthroughError{Op: api.GetUserProfile.Name, Err: err})
		} else {
			c.log.V(1).Info("no tasks body, continuing with profile", "error", err.Error())
		}

		resp, err := c.api.GetUserProfile(ctx)
		if err != nil {
			return result.Failure[model.UserProfile](err)
		}
		if resp == nil || strings.TrimSpace(resp.Email) == "" {
			return result.Failure[model.UserProfile](noBody(api.GetUserProfile))
		}
		return result.Success(model.UserProfile{
			Email:     resp.Email,
			Name:      resp.Name,
			TaskCount: count,
		})
	}, done)
}

func (c *Client) tasks(ctx context.Context) result.Result[[]model.Task] {
	resp, err := c.api.GetTasks(ctx)
	if err != nil {
		return result.Failure[[]model.Task](err)
	}
	// A missing or null "notes" decodes to nil; an explicit [] does not.
	if resp == nil || resp.Notes == nil {
		return result.Failure[[]model.Task](noBody(api.GetTasks))
	}
	return result.Success(model.IncompleteTasks(resp.Notes))
}

func messageResult(ep api.Endpoint, resp *model.MessageResponse, err error) result.Result[string] {
	if err != nil {
		return result.Failure[string](err)
	}
	if resp == nil {
		return result.Failure[string](noBody(ep))
	}
	return result.Success(resp.Message)
}

func noBody(ep api.Endpoint) error {
	return fmt.Errorf("%s: %w", ep.Name, api.ErrNoResponseBody)
}
