package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tasknest/tasknest-go/internal/model"
	"github.com/tasknest/tasknest-go/internal/repository"
)

type mapCache struct {
	entries     map[string]model.UserResponse
	invalidated []string
}

func newMapCache() *mapCache { return &mapCache{entries: make(map[string]model.UserResponse)} }

func (c *mapCache) Get(_ context.Context, id string) (model.UserResponse, bool) {
	p, ok := c.entries[id]
	return p, ok
}
func (c *mapCache) Set(_ context.Context, p model.UserResponse) { c.entries[p.ID] = p }
func (c *mapCache) Invalidate(_ context.Context, id string) {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}

func seedUser(t *testing.T, users UserStore) *model.User {
	t.Helper()
	now := time.Now().UTC()
	u := &model.User{
		ID: "u-1", Email: "alice@x.com", Name: "Alice", Gender: model.DefaultGender,
		PasswordHash: "$2a$10$hash", CreatedAt: now, UpdatedAt: now,
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	return u
}

func TestGetProfile(t *testing.T) {
	users := repository.NewMemoryStore().Users()
	seedUser(t, users)
	cache := newMapCache()
	svc := NewProfileService(users, cache)

	profile, err := svc.Get(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if profile.Email != "alice@x.com" || profile.Name != "Alice" {
		t.Errorf("Get() = %+v", profile)
	}
	if _, ok := cache.entries["u-1"]; !ok {
		t.Error("Get() did not populate the cache")
	}

	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(ghost) error = %v, want %v", err, ErrNotFound)
	}
}

func TestGetProfile_ServedFromCache(t *testing.T) {
	cache := newMapCache()
	cache.entries["u-9"] = model.UserResponse{ID: "u-9", Name: "Cached"}
	svc := NewProfileService(failingUsers{err: errors.New("db down")}, cache)

	profile, err := svc.Get(context.Background(), "u-9")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if profile.Name != "Cached" {
		t.Errorf("Get() = %+v", profile)
	}
}

func TestUpdateProfile_Validation(t *testing.T) {
	users := repository.NewMemoryStore().Users()
	seedUser(t, users)
	svc := NewProfileService(users, nil)

	tests := []struct {
		name string
		upd  model.ProfileUpdate
	}{
		{"short name", model.ProfileUpdate{Name: "A", Gender: "male"}},
		{"blank name", model.ProfileUpdate{Name: "   ", Gender: "male"}},
		{"bad gender", model.ProfileUpdate{Name: "Alice", Gender: "robot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Update(context.Background(), "u-1", tt.upd); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Update() error = %v, want %v", err, ErrInvalidInput)
			}
		})
	}
}

func TestUpdateProfile_NeverChangesEmail(t *testing.T) {
	users := repository.NewMemoryStore().Users()
	seedUser(t, users)
	cache := newMapCache()
	svc := NewProfileService(users, cache)
	ctx := context.Background()

	updated, err := svc.Update(ctx, "u-1", model.ProfileUpdate{Name: "Alicia", Gender: "female"})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.Email != "alice@x.com" || updated.Name != "Alicia" || updated.Gender != "female" {
		t.Errorf("Update() = %+v", updated)
	}

	stored, _ := users.GetByID(ctx, "u-1")
	if stored.Email != "alice@x.com" {
		t.Errorf("stored email changed to %q", stored.Email)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "u-1" {
		t.Errorf("cache invalidations = %v", cache.invalidated)
	}
}

func TestUpdateProfile_EmptyGenderKeepsCurrent(t *testing.T) {
	users := repository.NewMemoryStore().Users()
	seedUser(t, users)
	svc := NewProfileService(users, nil)
	ctx := context.Background()

	if _, err := svc.Update(ctx, "u-1", model.ProfileUpdate{Name: "Alice", Gender: "other"}); err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	updated, err := svc.Update(ctx, "u-1", model.ProfileUpdate{Name: "Alice B"})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.Gender != "other" {
		t.Errorf("Update() gender = %q, want %q", updated.Gender, "other")
	}
}

func TestUpdateProfile_NotFound(t *testing.T) {
	svc := NewProfileService(repository.NewMemoryStore().Users(), nil)

	_, err := svc.Update(context.Background(), "ghost", model.ProfileUpdate{Name: "Ghost", Gender: "other"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want %v", err, ErrNotFound)
	}
}
