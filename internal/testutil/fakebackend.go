package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"taskie/internal/api"
	"taskie/internal/model"
	"taskie/internal/transport"
)

// RecordedRequest is a request seen by FakeBackend.
type RecordedRequest struct {
	Endpoint      string
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	HasAuth       bool
	Body          []byte
}

type fakeUser struct {
	name     string
	email    string
	password string
}

type ctxKey struct{}

// FakeBackend is an httptest server speaking the Taskie REST contract.
// Tokens are HS256 JWTs carrying the user's email; task ids are UUIDs.
type FakeBackend struct {
	Server *httptest.Server

	secret []byte

	mu       sync.Mutex
	users    map[string]fakeUser     // email -> user
	notes    map[string][]model.Task // email -> tasks
	requests []RecordedRequest

	// Per-endpoint overrides, keyed by endpoint name.
	status    map[string]int
	emptyBody map[string]bool
	rawBody   map[string]string
	delay     map[string]time.Duration
}

// NewFakeBackend starts a FakeBackend that is closed when the test ends.
func NewFakeBackend(t testing.TB) *FakeBackend {
	t.Helper()

	f := &FakeBackend{
		secret:    []byte("test-secret"),
		users:     make(map[string]fakeUser),
		notes:     make(map[string][]model.Task),
		status:    make(map[string]int),
		emptyBody: make(map[string]bool),
		rawBody:   make(map[string]string),
		delay:     make(map[string]time.Duration),
	}

	handlers := map[string]http.HandlerFunc{
		api.RegisterUser.Name:   f.handleRegister,
		api.LoginUser.Name:      f.handleLogin,
		api.GetTasks.Name:       f.handleGetTasks,
		api.AddTask.Name:        f.handleAddTask,
		api.CompleteTask.Name:   f.handleComplete,
		api.DeleteTask.Name:     f.handleDelete,
		api.GetUserProfile.Name: f.handleProfile,
	}

	mux := http.NewServeMux()
	for _, ep := range api.Endpoints() {
		mux.Handle(ep.Pattern(), f.wrap(ep, handlers[ep.Name]))
	}

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the server origin.
func (f *FakeBackend) URL() string {
	return f.Server.URL
}

// AddUser registers a user directly.
func (f *FakeBackend) AddUser(name, email, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = fakeUser{name: name, email: email, password: password}
}

// AddTask stores a task for a user, assigning an id if empty.
func (f *FakeBackend) AddTask(email string, task model.Task) model.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	f.notes[email] = append(f.notes[email], task)
	return task
}

// Tasks returns a copy of a user's stored tasks, completed ones included.
func (f *FakeBackend) Tasks(email string) []model.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Task, len(f.notes[email]))
	copy(out, f.notes[email])
	return out
}

// IssueToken returns a valid token for email.
func (f *FakeBackend) IssueToken(email string) string {
	claims := jwt.MapClaims{
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(f.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

// SetStatus makes ep fail with code.
func (f *FakeBackend) SetStatus(ep api.Endpoint, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[ep.Name] = code
}

// SetEmptyBody makes ep answer 200 with no body.
func (f *FakeBackend) SetEmptyBody(ep api.Endpoint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emptyBody[ep.Name] = true
}

// SetRawBody makes ep answer 200 with body verbatim.
func (f *FakeBackend) SetRawBody(ep api.Endpoint, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rawBody[ep.Name] = body
}

// SetDelay holds ep's response for d, or until the client goes away.
func (f *FakeBackend) SetDelay(ep api.Endpoint, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delay[ep.Name] = d
}

// Requests returns every request received so far, in order.
func (f *FakeBackend) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// Count returns how many requests hit ep.
func (f *FakeBackend) Count(ep api.Endpoint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r.Endpoint == ep.Name {
			n++
		}
	}
	return n
}

func (f *FakeBackend) wrap(ep api.Endpoint, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		_, hasAuth := r.Header[transport.HeaderAuthorization]

		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Endpoint:      ep.Name,
			Method:        r.Method,
			Path:          r.URL.Path,
			RawQuery:      r.URL.RawQuery,
			Authorization: r.Header.Get(transport.HeaderAuthorization),
			HasAuth:       hasAuth,
			Body:          body,
		})
		status := f.status[ep.Name]
		empty := f.emptyBody[ep.Name]
		raw, hasRaw := f.rawBody[ep.Name]
		delay := f.delay[ep.Name]
		f.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		switch {
		case status != 0:
			writeError(w, status, http.StatusText(status))
			return
		case empty:
			w.WriteHeader(http.StatusOK)
			return
		case hasRaw:
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, raw)
			return
		}

		if ep.Auth {
			email, ok := f.authenticate(r.Header.Get(transport.HeaderAuthorization))
			if !ok {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, email))
		}
		next(w, r)
	})
}

// authenticate accepts the raw token, without a scheme prefix.
func (f *FakeBackend) authenticate(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	token, err := jwt.Parse(header, func(t *jwt.Token) (interface{}, error) {
		return f.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	email, ok := claims["email"].(string)
	return email, ok && email != ""
}

func (f *FakeBackend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid registration")
		return
	}
	f.mu.Lock()
	_, exists := f.users[req.Email]
	if !exists {
		f.users[req.Email] = fakeUser{name: req.Name, email: req.Email, password: req.Password}
	}
	f.mu.Unlock()
	if exists {
		writeError(w, http.StatusConflict, "user already exists")
		return
	}
	writeJSON(w, model.MessageResponse{Message: "User created"})
}

func (f *FakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid login")
		return
	}
	f.mu.Lock()
	user, ok := f.users[req.Email]
	f.mu.Unlock()
	if !ok || user.password != req.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, model.LoginResponse{Token: f.IssueToken(req.Email)})
}

func (f *FakeBackend) handleGetTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, model.GetTasksResponse{Notes: f.Tasks(emailFrom(r))})
}

func (f *FakeBackend) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req model.AddTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid task")
		return
	}
	task := f.AddTask(emailFrom(r), model.Task{
		Title:    req.Title,
		Content:  req.Content,
		Priority: req.Priority,
	})
	writeJSON(w, task)
}

func (f *FakeBackend) handleComplete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(api.CompleteTask.IDParam)
	email := emailFrom(r)

	f.mu.Lock()
	found := false
	for i := range f.notes[email] {
		if f.notes[email][i].ID == id {
			f.notes[email][i].IsCompleted = true
			found = true
			break
		}
	}
	f.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, model.MessageResponse{Message: "Task completed"})
}

func (f *FakeBackend) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	email := emailFrom(r)

	f.mu.Lock()
	found := false
	tasks := f.notes[email]
	for i := range tasks {
		if tasks[i].ID == id {
			f.notes[email] = append(tasks[:i], tasks[i+1:]...)
			found = true
			break
		}
	}
	f.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, model.MessageResponse{Message: "Task deleted"})
}

func (f *FakeBackend) handleProfile(w http.ResponseWriter, r *http.Request) {
	email := emailFrom(r)
	f.mu.Lock()
	user, ok := f.users[email]
	f.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, model.ProfileResponse{Email: user.email, Name: user.name})
}

func emailFrom(r *http.Request) string {
	email, _ := r.Context().Value(ctxKey{}).(string)
	return email
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeError uses the error envelope googleapi.CheckResponse understands.
func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": code, "message": message},
	})
}
