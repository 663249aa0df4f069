package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/neuronet-health/neuronet/internal/core/domain"
	"github.com/neuronet-health/neuronet/internal/core/ports"
)

// ProfileService reads and updates user profiles. Email and role are owned by
// the account and never change through this surface.
type ProfileService struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewProfileService(users ports.UserRepository, profiles ports.ProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, profiles: profiles, logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*ports.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ports.UserProfile{User: user, Profile: profile}, nil
}

// Update applies a partial profile update. An update carrying no fields is
// rejected rather than silently succeeding.
func (s *ProfileService) Update(ctx context.Context, userID string, update domain.ProfileUpdate) (*ports.UserProfile, error) {
	if update.IsEmpty() {
		return nil, domain.ErrEmptyUpdate
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Update(ctx, userID, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Msg("profile updated")
	return &ports.UserProfile{User: user, Profile: profile}, nil
}
