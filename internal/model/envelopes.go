package model

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddTaskRequest is the body of POST /api/note.
type AddTaskRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Priority int    `json:"taskPriority"`
}

// LoginResponse mirrors /api/login.
type LoginResponse struct {
	Token string `json:"token"`
}

// MessageResponse is returned by register, complete and delete.
type MessageResponse struct {
	Message string `json:"message"`
}

// GetTasksResponse mirrors GET /api/note.
type GetTasksResponse struct {
	Notes []Task `json:"notes"`
}

// ProfileResponse mirrors /api/user/profile.
type ProfileResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
