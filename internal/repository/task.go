package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tasknest/tasknest-go/internal/model"
)

// TaskRepository handles task persistence. Every read and delete is filtered
// by owner_id.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `INSERT INTO tasks (id, owner_id, title, created_at) VALUES (?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, task.ID, task.OwnerID, task.Title, task.CreatedAt); err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

// ListByOwner retrieves all tasks of ownerID, newest first.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	query := `SELECT id, owner_id, title, created_at
		FROM tasks WHERE owner_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// DeleteByOwner removes the task only when it belongs to ownerID and reports
// whether a row was removed.
func (r *TaskRepository) DeleteByOwner(ctx context.Context, ownerID, taskID string) (bool, error) {
	query := `DELETE FROM tasks WHERE id = ? AND owner_id = ?`

	result, err := r.db.ExecContext(ctx, query, taskID, ownerID)
	if err != nil {
		return false, fmt.Errorf("deleting task: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
