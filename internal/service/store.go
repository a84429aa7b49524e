package service

import (
	"context"

	"github.com/tasknest/tasknest-go/internal/model"
)

// UserStore is the credential store. Create must reject a duplicate email
// atomically with repository.ErrDuplicateEmail.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, upd model.ProfileUpdate) (*model.User, error)
}

// TaskStore persists tasks; every read and delete is scoped to an owner.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error)
	DeleteByOwner(ctx context.Context, ownerID, taskID string) (bool, error)
}

// ProfileCache caches password-free profiles. The concrete *cache.ProfileCache
// tolerates a nil receiver.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (model.UserResponse, bool)
	Set(ctx context.Context, profile model.UserResponse)
	Invalidate(ctx context.Context, userID string)
}
