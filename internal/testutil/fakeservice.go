// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"taskie/internal/model"
	"taskie/internal/result"
	"taskie/internal/service"
)

// FakeToken is the token FakeService hands out on a successful login.
const FakeToken = "fake-token"

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	tasks []model.Task
	users map[string]model.RegisterRequest // email -> account

	// Name and Email identify the signed-in user for GetUserProfile.
	Name  string
	Email string

	// Error injection for testing
	RegisterErr     error
	LoginErr        error
	GetTasksErr     error
	AddTaskErr      error
	CompleteTaskErr error
	DeleteTaskErr   error
	ProfileErr      error
}

// Ensure FakeService implements service.Service at compile time.
var _ service.Service = (*FakeService)(nil)

// NewFakeService creates a new FakeService for a user named "Test".
func NewFakeService() *FakeService {
	return &FakeService{
		users: make(map[string]model.RegisterRequest),
		Name:  "Test",
		Email: "test@example.com",
	}
}

// AddUser adds an account that LoginUser accepts.
func (f *FakeService) AddUser(name, email, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = model.RegisterRequest{Name: name, Email: email, Password: password}
}

// AddOpenTask adds an open task with the given id and title.
func (f *FakeService) AddOpenTask(id, title string) {
	f.Put(model.Task{ID: id, Title: title})
}

// Put stores a task as is.
func (f *FakeService) Put(task model.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
}

// Tasks returns a copy of every stored task, completed ones included.
func (f *FakeService) Tasks() []model.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]model.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// RegisterUser implements service.Service.
func (f *FakeService) RegisterUser(ctx context.Context, req model.RegisterRequest, done func(result.Result[string])) *service.Call {
	return service.Go(ctx, func(ctx context.Context) result.Result[string] {
		if f.RegisterErr != nil {
			return result.Failure[string](f.RegisterErr)
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.users[req.Email]; ok {
			return result.Failure[string](fmt.Errorf("user already exists: %s", req.Email))
		}
		f.users[req.Email] = req
		return result.Success("User created")
	}, done)
}

// LoginUser implements service.Service.
func (f *FakeService) LoginUser(ctx context.Context, req model.LoginRequest, done func(result.Result[string])) *service.Call {
	return service.Go(ctx, func(ctx context.Context) result.Result[string] {
		if f.LoginErr != nil {
			return result.Failure[string](f.LoginErr)
		}
		f.mu.RLock()
		defer f.mu.RUnlock()
		if u, ok := f.users[req.Email]; !ok || u.Password != req.Password {
			return result.Failure[string](errors.New("invalid credentials"))
		}
		return result.Success(FakeToken)
	}, done)
}

// GetTasks implements service.Service.
func (f *FakeService) GetTasks(ctx context.Context, done func(result.Result[[]model.Task])) *service.Call {
	return service.Go(ctx, func(ctx context.Context) result.Result[[]model.Task] {
		if f.GetTasksErr != nil {
			return result.Failure[[]model.Task](f.GetTasksErr)
		}
		return result.Success(model.IncompleteTasks(f.Tasks()))
	}, done)
}

// AddTask implements service.Service.
func (f *FakeService) AddTask(ctx context.Context, req model.AddTaskRequest, done func(result.Result[model.Task])) *service.Call {
	return service.Go(ctx, func(ctx context.Context) result.Result[model.Task] {
		if f.AddTaskErr != nil {
			return result.Failure[model.Task](f.AddTaskErr)
		}
		task := model.Task{
			ID:       uuid.NewString(),
			Title:    req.Title,
			Content:  req.Content,
			Priority: req.Priority,
		}
		f.Put(task)
		return result.Success(task)
	}, done)
}

// CompleteTask implements service.Service.
func (f *FakeService) CompleteTask(ctx context.Context, taskID string, done func(result.Result[string])) *service.Call {
	return service.Go(ctx, func(ctx context.Context) result.Result[string] {
		if f.CompleteTaskErr != nil {
			return result.Failure[string](f.CompleteTaskErr)
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.tasks {
			if f.tasks[i].ID == taskID {
				f.tasks[i].IsCompleted = true
				return result.Success("Task completed")
			}
		}
		return result.Failure[string](ErrNotFound)
	}, done)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, taskID string, done func(result.Result[string])) *service.Call {
	return service.Go(ctx, func(ctx context.Context) result.Result[string] {
		if f.DeleteTaskErr != nil {
			return result.Failure[string](f.DeleteTaskErr)
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.tasks {
			if f.tasks[i].ID == taskID {
				f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
				return result.Success("Task deleted")
			}
		}
		return result.Failure[string](ErrNotFound)
	}, done)
}

// GetUserProfile implements service.Service.
func (f *FakeService) GetUserProfile(ctx context.Context, done func(result.Result[model.UserProfile])) *service.Call {
	return service.Go(ctx, func(ctx context.Context) result.Result[model.UserProfile] {
		if f.ProfileErr != nil {
			return result.Failure[model.UserProfile](f.ProfileErr)
		}
		return result.Success(model.UserProfile{
			Email:     f.Email,
			Name:      f.Name,
			TaskCount: len(model.IncompleteTasks(f.Tasks())),
		})
	}, done)
}
