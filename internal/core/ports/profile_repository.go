package ports

import (
	"context"

	"github.com/neuronet-health/neuronet/internal/core/domain"
)

// ProfileRepository defines the persistence interface for user profiles.
type ProfileRepository interface {
	CreateEmpty(ctx context.Context, userID string) error
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error)
}
