package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tasknest/tasknest-go/internal/model"
)

// MemoryStore is an in-process user and task store for tests and local runs
// without MySQL. A single mutex makes each operation atomic, including the
// email uniqueness check on Create.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]model.User
	byEmail  map[string]string
	tasks    map[string]memTask
	sequence uint64
}

type memTask struct {
	task model.Task
	seq  uint64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]model.User),
		byEmail: make(map[string]string),
		tasks:   make(map[string]memTask),
	}
}

// Users returns a view of the store satisfying the user store contract.
func (m *MemoryStore) Users() *MemoryUsers { return &MemoryUsers{m: m} }

// Tasks returns a view of the store satisfying the task store contract.
func (m *MemoryStore) Tasks() *MemoryTasks { return &MemoryTasks{m: m} }

// MemoryUsers is the user side of a MemoryStore.
type MemoryUsers struct{ m *MemoryStore }

func (s *MemoryUsers) Create(_ context.Context, user *model.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, taken := s.m.byEmail[user.Email]; taken {
		return ErrDuplicateEmail
	}
	s.m.users[user.ID] = *user
	s.m.byEmail[user.Email] = user.ID
	return nil
}

func (s *MemoryUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	id, ok := s.m.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := s.m.users[id]
	return &u, nil
}

func (s *MemoryUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	u, ok := s.m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (s *MemoryUsers) UpdateProfile(_ context.Context, id string, upd model.ProfileUpdate) (*model.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	u, ok := s.m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u.Name = upd.Name
	u.Gender = upd.Gender
	u.UpdatedAt = time.Now().UTC()
	s.m.users[id] = u
	return &u, nil
}

// MemoryTasks is the task side of a MemoryStore.
type MemoryTasks struct{ m *MemoryStore }

func (s *MemoryTasks) Create(_ context.Context, task *model.Task) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	s.m.sequence++
	s.m.tasks[task.ID] = memTask{task: *task, seq: s.m.sequence}
	return nil
}

func (s *MemoryTasks) ListByOwner(_ context.Context, ownerID string) ([]model.Task, error) {
	s.m.mu.RLock()
	var owned []memTask
	for _, t := range s.m.tasks {
		if t.task.OwnerID == ownerID {
			owned = append(owned, t)
		}
	}
	s.m.mu.RUnlock()

	// Newest first; insertion order breaks ties between equal timestamps.
	sort.Slice(owned, func(i, j int) bool {
		a, b := owned[i], owned[j]
		if !a.task.CreatedAt.Equal(b.task.CreatedAt) {
			return a.task.CreatedAt.After(b.task.CreatedAt)
		}
		return a.seq > b.seq
	})

	tasks := make([]model.Task, len(owned))
	for i, t := range owned {
		tasks[i] = t.task
	}
	return tasks, nil
}

func (s *MemoryTasks) DeleteByOwner(_ context.Context, ownerID, taskID string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	t, ok := s.m.tasks[taskID]
	if !ok || t.task.OwnerID != ownerID {
		return false, nil
	}
	delete(s.m.tasks, taskID)
	return true, nil
}
