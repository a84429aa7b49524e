package model

import "time"

// Task represents a task owned by a single user.
type Task struct {
	ID        string
	OwnerID   string
	Title     string
	CreatedAt time.Time
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title string `json:"title"`
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// DashboardResponse bundles the caller's profile with their tasks.
type DashboardResponse struct {
	User  UserResponse   `json:"user"`
	Tasks []TaskResponse `json:"tasks"`
}
