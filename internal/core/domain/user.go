package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("incorrect email or password")
var ErrUserExists = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrInactiveUser = errors.New("user account is inactive")
var ErrInvalidRole = errors.New("role must be one of: user, therapist, buddy")
var ErrWeakPassword = errors.New("password must be at least 8 characters")
var ErrTooManyAttempts = errors.New("too many failed login attempts, try again later")

// User models an account in the identity service. The role string is always a
// member of the pkg/roles enumeration; registration rejects anything else.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
