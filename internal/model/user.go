package model

import "time"

// Gender values accepted on a profile.
const (
	GenderMale           = "male"
	GenderFemale         = "female"
	GenderOther          = "other"
	GenderPreferNotToSay = "prefer_not_to_say"
	DefaultGender        = GenderPreferNotToSay
)

// ValidGender reports whether g is one of the accepted gender values.
func ValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay:
		return true
	}
	return false
}

// User represents a user in the database.
type User struct {
	ID           string
	Email        string
	Name         string
	Gender       string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Response strips the password hash for API output.
func (u *User) Response() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Gender:    u.Gender,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdateRequest is the body of PUT /auth/me. Email is accepted so that
// clients echoing the whole profile are not rejected, but it is never applied.
type ProfileUpdateRequest struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Email  string `json:"email,omitempty"`
}

// ProfileUpdate holds the only fields a profile update may change.
type ProfileUpdate struct {
	Name   string
	Gender string
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Gender    string    `json:"gender"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
