package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tasknest/tasknest-go/internal/model"
)

const (
	MinTitleLength = 3
	MaxTitleLength = 200
)

// TaskService performs owner-scoped task operations. The owner id always comes
// from the verified session, never from the request body.
type TaskService struct {
	tasks TaskStore
	now   func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks TaskStore) *TaskService {
	return &TaskService{tasks: tasks, now: time.Now}
}

// List returns the caller's tasks, newest first.
func (s *TaskService) List(ctx context.Context, userID string) ([]model.TaskResponse, error) {
	tasks, err := s.tasks.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return tasksToResponse(tasks), nil
}

// Create stores a new task owned by userID.
func (s *TaskService) Create(ctx context.Context, userID, title string) (model.TaskResponse, error) {
	title = strings.TrimSpace(title)
	n := len([]rune(title))
	if n < MinTitleLength {
		return model.TaskResponse{}, fmt.Errorf("%w: title must be at least %d characters", ErrInvalidInput, MinTitleLength)
	}
	if n > MaxTitleLength {
		return model.TaskResponse{}, fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, MaxTitleLength)
	}

	task := model.Task{
		ID:        uuid.NewString(),
		OwnerID:   userID,
		Title:     title,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.tasks.Create(ctx, &task); err != nil {
		return model.TaskResponse{}, err
	}

	return taskToResponse(task), nil
}

// Delete removes the task if userID owns it. Missing or foreign ids are a
// silent no-op so callers learn nothing about other users' tasks.
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	removed, err := s.tasks.DeleteByOwner(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if !removed {
		slog.DebugContext(ctx, "task delete matched nothing", "user_id", userID, "task_id", taskID)
	}
	return nil
}

func taskToResponse(t model.Task) model.TaskResponse {
	return model.TaskResponse{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		Title:     t.Title,
		CreatedAt: t.CreatedAt,
	}
}

// tasksToResponse never returns nil so empty lists encode as [].
func tasksToResponse(tasks []model.Task) []model.TaskResponse {
	result := make([]model.TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = taskToResponse(t)
	}
	return result
}
