package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"google.golang.org/api/googleapi"

	"taskie/internal/model"
)

// DefaultBaseURL is the public Taskie backend.
const DefaultBaseURL = "https://taskie-rw.herokuapp.com"

// Service is the typed view of the endpoint table. A (nil, nil) return
// means the backend answered 2xx with no body.
type Service interface {
	RegisterUser(ctx context.Context, req model.RegisterRequest) (*model.MessageResponse, error)
	LoginUser(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	GetTasks(ctx context.Context) (*model.GetTasksResponse, error)
	AddTask(ctx context.Context, req model.AddTaskRequest) (*model.Task, error)
	CompleteTask(ctx context.Context, taskID string) (*model.MessageResponse, error)
	DeleteTask(ctx context.Context, taskID string) (*model.MessageResponse, error)
	GetUserProfile(ctx context.Context) (*model.ProfileResponse, error)
}

// Ensure HTTPService implements Service at compile time.
var _ Service = (*HTTPService)(nil)

// HTTPService implements Service with an http.Client, normally one built
// by transport.Build.
type HTTPService struct {
	baseURL *url.URL
	http    *http.Client
}

// New creates an HTTPService for baseURL. An empty baseURL selects
// DefaultBaseURL; a nil client selects http.DefaultClient.
func New(httpClient *http.Client, baseURL string) (*HTTPService, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPService{baseURL: base, http: httpClient}, nil
}

// BaseURL returns the normalized origin requests are sent to.
func (s *HTTPService) BaseURL() string {
	return s.baseURL.String()
}

func (s *HTTPService) RegisterUser(ctx context.Context, req model.RegisterRequest) (*model.MessageResponse, error) {
	return invoke[model.MessageResponse](ctx, s, RegisterUser, "", req)
}

func (s *HTTPService) LoginUser(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	return invoke[model.LoginResponse](ctx, s, LoginUser, "", req)
}

func (s *HTTPService) GetTasks(ctx context.Context) (*model.GetTasksResponse, error) {
	return invoke[model.GetTasksResponse](ctx, s, GetTasks, "", nil)
}

func (s *HTTPService) AddTask(ctx context.Context, req model.AddTaskRequest) (*model.Task, error) {
	return invoke[model.Task](ctx, s, AddTask, "", req)
}

func (s *HTTPService) CompleteTask(ctx context.Context, taskID string) (*model.MessageResponse, error) {
	return invoke[model.MessageResponse](ctx, s, CompleteTask, taskID, nil)
}

func (s *HTTPService) DeleteTask(ctx context.Context, taskID string) (*model.MessageResponse, error) {
	return invoke[model.MessageResponse](ctx, s, DeleteTask, taskID, nil)
}

func (s *HTTPService) GetUserProfile(ctx context.Context) (*model.ProfileResponse, error) {
	return invoke[model.ProfileResponse](ctx, s, GetUserProfile, "", nil)
}

func invoke[T any](ctx context.Context, s *HTTPService, ep Endpoint, id string, body any) (*T, error) {
	data, err := s.do(ctx, ep, id, body)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var out T
	if err := decodeJSON(data, &out); err != nil {
		return nil, &DecodeError{Op: ep.Name, Err: err}
	}
	return &out, nil
}

// do performs the exchange and returns the raw body, or nil for an empty one.
func (s *HTTPService) do(ctx context.Context, ep Endpoint, id string, body any) ([]byte, error) {
	rel, err := ep.Ref(id)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := encodeJSON(body)
		if err != nil {
			return nil, &TransportError{Op: ep.Name, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	reqURL := s.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, ep.Method, reqURL.String(), reader)
	if err != nil {
		return nil, &TransportError{Op: ep.Name, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: ep.Name, Err: err}
	}
	defer googleapi.CloseBody(resp)

	if err := googleapi.CheckResponse(resp); err != nil {
		return nil, &TransportError{Op: ep.Name, Err: err}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: ep.Name, Err: fmt.Errorf("read response: %w", err)}
	}
	if isEmptyBody(data) {
		return nil, nil
	}
	return data, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
