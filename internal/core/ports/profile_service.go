package ports

import (
	"context"

	"github.com/neuronet-health/neuronet/internal/core/domain"
)

// UserProfile combines the account identity with its profile fields, the way
// the profile endpoints present it.
type UserProfile struct {
	User    *domain.User
	Profile *domain.Profile
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*UserProfile, error)
	Update(ctx context.Context, userID string, update domain.ProfileUpdate) (*UserProfile, error)
}
