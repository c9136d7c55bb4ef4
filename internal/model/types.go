// Package model defines the Taskie domain records and wire envelopes.
package model

// Task represents a single task as stored by the backend.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsCompleted bool   `json:"isCompleted"`
	Priority    int    `json:"taskPriority"`
}

// UserProfile is derived on the client: TaskCount is the number of
// incomplete tasks, not a field returned by the profile endpoint.
type UserProfile struct {
	Email     string
	Name      string
	TaskCount int
}

// IncompleteTasks returns the tasks that are not completed, in order.
// The result is never nil.
func IncompleteTasks(tasks []Task) []Task {
	open := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsCompleted {
			open = append(open, t)
		}
	}
	return open
}
