// Package api declares the Taskie REST contract and implements it over HTTP.
package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Endpoint describes one logical operation on the wire.
type Endpoint struct {
	// Name is the logical operation name, used in errors and logs.
	Name string

	// Method is the HTTP method.
	Method string

	// Path may contain an {id} segment filled from the task id.
	Path string

	// IDParam, if set, names the query parameter that carries the task id.
	IDParam string

	// Auth marks endpoints the backend protects. The client still sends
	// the request unauthenticated when no token is held.
	Auth bool
}

// The binding contract between client and backend.
var (
	RegisterUser   = Endpoint{Name: "registerUser", Method: http.MethodPost, Path: "/api/register"}
	LoginUser      = Endpoint{Name: "loginUser", Method: http.MethodPost, Path: "/api/login"}
	GetTasks       = Endpoint{Name: "getTasks", Method: http.MethodGet, Path: "/api/note", Auth: true}
	AddTask        = Endpoint{Name: "addTask", Method: http.MethodPost, Path: "/api/note", Auth: true}
	CompleteTask   = Endpoint{Name: "completeTask", Method: http.MethodPost, Path: "/api/note/complete", IDParam: "id", Auth: true}
	DeleteTask     = Endpoint{Name: "deleteTask", Method: http.MethodDelete, Path: "/api/note/{id}", Auth: true}
	GetUserProfile = Endpoint{Name: "getUserProfile", Method: http.MethodGet, Path: "/api/user/profile", Auth: true}
)

// Endpoints returns every endpoint in declaration order.
func Endpoints() []Endpoint {
	return []Endpoint{
		RegisterUser,
		LoginUser,
		GetTasks,
		AddTask,
		CompleteTask,
		DeleteTask,
		GetUserProfile,
	}
}

// Pattern returns the endpoint as an http.ServeMux pattern, e.g.
// "DELETE /api/note/{id}".
func (e Endpoint) Pattern() string {
	return e.Method + " " + e.Path
}

// NeedsID reports whether the endpoint identifies a task.
func (e Endpoint) NeedsID() bool {
	return e.IDParam != "" || strings.Contains(e.Path, "{id}")
}

// Ref builds the relative URL for the endpoint.
func (e Endpoint) Ref(id string) (*url.URL, error) {
	if e.NeedsID() && strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%s: %w", e.Name, ErrTaskIDRequired)
	}
	rel, err := url.Parse(strings.ReplaceAll(e.Path, "{id}", url.PathEscape(id)))
	if err != nil {
		return nil, fmt.Errorf("%s: build url: %w", e.Name, err)
	}
	if e.IDParam != "" {
		values := url.Values{}
		values.Set(e.IDParam, id)
		rel.RawQuery = values.Encode()
	}
	return rel, nil
}
