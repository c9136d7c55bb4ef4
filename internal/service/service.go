// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"

	"taskie/internal/model"
	"taskie/internal/result"
)

// Service defines the asynchronous task operations.
// Every method returns at once; the outcome arrives through done on a
// background goroutine. Errors never escape except as a Failure.
type Service interface {
	// RegisterUser creates an account. Success carries the server message.
	RegisterUser(ctx context.Context, req model.RegisterRequest, done func(result.Result[string])) *Call

	// LoginUser authenticates. Success carries the token, which is also
	// stored for subsequent requests.
	LoginUser(ctx context.Context, req model.LoginRequest, done func(result.Result[string])) *Call

	// GetTasks returns the incomplete tasks in server order.
	GetTasks(ctx context.Context, done func(result.Result[[]model.Task])) *Call

	// AddTask creates a task and returns it as stored by the server.
	AddTask(ctx context.Context, req model.AddTaskRequest, done func(result.Result[model.Task])) *Call

	// CompleteTask marks a task completed.
	CompleteTask(ctx context.Context, taskID string, done func(result.Result[string])) *Call

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, taskID string, done func(result.Result[string])) *Call

	// GetUserProfile returns the profile with the count of incomplete tasks.
	GetUserProfile(ctx context.Context, done func(result.Result[model.UserProfile])) *Call
}
