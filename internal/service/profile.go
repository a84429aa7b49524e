package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tasknest/tasknest-go/internal/model"
	"github.com/tasknest/tasknest-go/internal/repository"
)

// ProfileService reads and edits the caller's own profile.
type ProfileService struct {
	users UserStore
	cache ProfileCache
}

// NewProfileService creates a new ProfileService. cache may be nil.
func NewProfileService(users UserStore, cache ProfileCache) *ProfileService {
	return &ProfileService{users: users, cache: cache}
}

// Get returns the profile of userID without its password hash.
func (s *ProfileService) Get(ctx context.Context, userID string) (model.UserResponse, error) {
	if s.cache != nil {
		if profile, ok := s.cache.Get(ctx, userID); ok {
			return profile, nil
		}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrNotFound
		}
		return model.UserResponse{}, err
	}

	profile := user.Response()
	if s.cache != nil {
		s.cache.Set(ctx, profile)
	}
	return profile, nil
}

// Update changes name and gender. An empty gender keeps the stored value.
// ProfileUpdate has no email field, so the identity key cannot change here.
func (s *ProfileService) Update(ctx context.Context, userID string, upd model.ProfileUpdate) (model.UserResponse, error) {
	upd.Name = strings.TrimSpace(upd.Name)
	upd.Gender = strings.TrimSpace(upd.Gender)

	if err := validateName(upd.Name); err != nil {
		return model.UserResponse{}, err
	}
	if upd.Gender != "" && !model.ValidGender(upd.Gender) {
		return model.UserResponse{}, fmt.Errorf("%w: invalid gender selection", ErrInvalidInput)
	}

	if upd.Gender == "" {
		current, err := s.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return model.UserResponse{}, ErrNotFound
			}
			return model.UserResponse{}, err
		}
		upd.Gender = current.Gender
	}

	user, err := s.users.UpdateProfile(ctx, userID, upd)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrNotFound
		}
		return model.UserResponse{}, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
	return user.Response(), nil
}
