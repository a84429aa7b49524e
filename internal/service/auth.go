package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tasknest/tasknest-go/internal/crypto"
	"github.com/tasknest/tasknest-go/internal/model"
	"github.com/tasknest/tasknest-go/internal/repository"
)

const (
	MinNameLength = 2
	MaxNameLength = 100
	maxEmailLen   = 255
)

// LoginResult carries a freshly issued session token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService registers users and exchanges credentials for session tokens.
type AuthService struct {
	users      UserStore
	codec      *crypto.TokenCodec
	sessionTTL time.Duration
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, codec *crypto.TokenCodec, sessionTTL time.Duration, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		codec:      codec,
		sessionTTL: sessionTTL,
		bcryptCost: bcryptCost,
	}
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user account with the default gender. The two
// character name minimum is applied on profile updates only; registration
// accepts any non-empty name.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.UserResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := NormalizeEmail(req.Email)

	if name == "" {
		return model.UserResponse{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > MaxNameLength {
		return model.UserResponse{}, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, MaxNameLength)
	}
	if email == "" || len(email) > maxEmailLen {
		return model.UserResponse{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return model.UserResponse{}, fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	if req.Password == "" {
		return model.UserResponse{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	hash, err := crypto.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return model.UserResponse{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
		slog.ErrorContext(ctx, "hashing password failed", "error", err)
		return model.UserResponse{}, ErrRegistrationFailed
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Gender:       model.DefaultGender,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrDuplicateIdentity
		}
		slog.ErrorContext(ctx, "creating user failed", "error", err)
		return model.UserResponse{}, ErrRegistrationFailed
	}

	slog.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user.Response(), nil
}

// Login verifies credentials and issues a session token. Unknown emails and
// wrong passwords both yield ErrInvalidCredentials after equal bcrypt work.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (LoginResult, error) {
	email := NormalizeEmail(req.Email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			crypto.BurnPasswordCheck(req.Password)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return LoginResult{}, err
	}
	if !match {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.codec.Issue(crypto.Identity{UserID: user.ID, Email: user.Email}, s.sessionTTL)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}

func validateName(name string) error {
	n := len([]rune(name))
	if n < MinNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", ErrInvalidInput, MinNameLength)
	}
	if n > MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, MaxNameLength)
	}
	return nil
}
