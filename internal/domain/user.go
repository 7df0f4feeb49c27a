package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Username and password length limits.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
	// MaxPasswordLength is bcrypt's practical input limit.
	MaxPasswordLength = 72
)

// User represents a registered user.
// Users are created on registration and are immutable afterwards.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NormalizeUsername trims surrounding whitespace from a submitted username.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// ValidateCredentials checks a registration username and plaintext password.
// The username is expected to be normalized already.
func ValidateCredentials(username, password string) error {
	switch {
	case username == "":
		return NewValidationError("username", "is required", ErrValidation)
	case len(username) < MinUsernameLength:
		return NewValidationError("username", "must be at least 3 characters", ErrValidation)
	case len(username) > MaxUsernameLength:
		return NewValidationError("username", "must be at most 50 characters", ErrValidation)
	}

	switch {
	case len(password) < MinPasswordLength:
		return NewValidationError("password", "must be at least 6 characters", ErrValidation)
	case len(password) > MaxPasswordLength:
		return NewValidationError("password", "must be at most 72 characters", ErrValidation)
	}

	return nil
}

// Validate checks that a persisted user record is complete.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if u.Username == "" {
		return NewValidationError("username", "is required", ErrValidation)
	}
	if u.HashedPassword == "" {
		return NewValidationError("password", "hash cannot be empty", ErrValidation)
	}
	return nil
}
