package domain

import (
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")
var ErrEmptyUpdate = errors.New("no fields provided for update")

// Profile holds the optional demographic fields a user fills in after
// registration. Every user gets an empty profile at registration time; the
// fields stay nil until the user sets them.
type Profile struct {
	UserID    string
	FullName  *string
	Age       *int
	Gender    *string
	Languages []string
	Interests []string
	UpdatedAt time.Time
}

// ProfileUpdate is a partial update: nil fields are left untouched.
type ProfileUpdate struct {
	FullName  *string
	Age       *int
	Gender    *string
	Languages []string
	Interests []string
}

// IsEmpty reports whether the update carries no fields at all.
func (u ProfileUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Age == nil && u.Gender == nil &&
		u.Languages == nil && u.Interests == nil
}
