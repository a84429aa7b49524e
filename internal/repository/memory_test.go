package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tasknest/tasknest-go/internal/model"
)

func TestMemoryUsers_UniqueEmailUnderRace(t *testing.T) {
	users := NewMemoryStore().Users()

	const workers = 32
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- users.Create(context.Background(), &model.User{
				ID:    string(rune('a' + i)),
				Email: "race@x.com",
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch err {
		case nil:
			ok++
		case ErrDuplicateEmail:
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != workers-1 {
		t.Fatalf("successes = %d, duplicates = %d", ok, dup)
	}
}

func TestMemoryUsers_UpdateProfileKeepsEmail(t *testing.T) {
	users := NewMemoryStore().Users()
	ctx := context.Background()

	if err := users.Create(ctx, &model.User{ID: "u-1", Email: "alice@x.com", Name: "Alice"}); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	got, err := users.UpdateProfile(ctx, "u-1", model.ProfileUpdate{Name: "Alicia", Gender: "female"})
	if err != nil {
		t.Fatalf("UpdateProfile() unexpected error: %v", err)
	}
	if got.Email != "alice@x.com" || got.Name != "Alicia" || got.Gender != "female" {
		t.Errorf("UpdateProfile() = %+v", got)
	}

	if _, err := users.UpdateProfile(ctx, "ghost", model.ProfileUpdate{Name: "Xx"}); err != ErrUserNotFound {
		t.Errorf("UpdateProfile(ghost) error = %v, want %v", err, ErrUserNotFound)
	}
}

func TestMemoryTasks_OwnerScoping(t *testing.T) {
	tasks := NewMemoryStore().Tasks()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	seed := []model.Task{
		{ID: "t-1", OwnerID: "alice", Title: "first", CreatedAt: base},
		{ID: "t-2", OwnerID: "bob", Title: "bob's", CreatedAt: base.Add(time.Second)},
		{ID: "t-3", OwnerID: "alice", Title: "second", CreatedAt: base.Add(2 * time.Second)},
		{ID: "t-4", OwnerID: "alice", Title: "same instant", CreatedAt: base.Add(2 * time.Second)},
	}
	for i := range seed {
		if err := tasks.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create() unexpected error: %v", err)
		}
	}

	list, err := tasks.ListByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("ListByOwner() unexpected error: %v", err)
	}
	var ids []string
	for _, task := range list {
		ids = append(ids, task.ID)
	}
	if want := []string{"t-4", "t-3", "t-1"}; len(ids) != 3 || ids[0] != want[0] || ids[1] != want[1] || ids[2] != want[2] {
		t.Fatalf("ListByOwner() ids = %v, want %v", ids, want)
	}

	removed, err := tasks.DeleteByOwner(ctx, "alice", "t-2")
	if err != nil || removed {
		t.Fatalf("DeleteByOwner(foreign) = %v, %v; want false, nil", removed, err)
	}
	bobs, _ := tasks.ListByOwner(ctx, "bob")
	if len(bobs) != 1 {
		t.Fatalf("bob's task was removed by another owner")
	}

	removed, err = tasks.DeleteByOwner(ctx, "alice", "t-1")
	if err != nil || !removed {
		t.Fatalf("DeleteByOwner(own) = %v, %v; want true, nil", removed, err)
	}
}
