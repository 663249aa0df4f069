package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/neuronet-health/neuronet/internal/core/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestProfileService_Get(t *testing.T) {
	repo := newStubUserRepo()
	created, _ := repo.Create(context.Background(), &domain.User{Email: "alice@example.com", Role: "user", IsActive: true})

	svc := NewProfileService(repo, &stubProfileRepo{}, zerolog.Nop())

	up, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if up.User.Email != "alice@example.com" {
		t.Errorf("unexpected user: %+v", up.User)
	}
	if up.Profile == nil || up.Profile.UserID != created.ID {
		t.Errorf("unexpected profile: %+v", up.Profile)
	}
}

func TestProfileService_Get_UnknownUser(t *testing.T) {
	svc := NewProfileService(newStubUserRepo(), &stubProfileRepo{}, zerolog.Nop())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProfileService_Update(t *testing.T) {
	repo := newStubUserRepo()
	created, _ := repo.Create(context.Background(), &domain.User{Email: "bob@example.com", Role: "buddy", IsActive: true})

	svc := NewProfileService(repo, &stubProfileRepo{}, zerolog.Nop())

	up, err := svc.Update(context.Background(), created.ID, domain.ProfileUpdate{
		FullName: strPtr("Bob"),
		Age:      intPtr(30),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if up.Profile.FullName == nil || *up.Profile.FullName != "Bob" {
		t.Errorf("full name not applied: %+v", up.Profile)
	}
	if up.Profile.Age == nil || *up.Profile.Age != 30 {
		t.Errorf("age not applied: %+v", up.Profile)
	}
}

func TestProfileService_Update_Empty(t *testing.T) {
	svc := NewProfileService(newStubUserRepo(), &stubProfileRepo{}, zerolog.Nop())

	if _, err := svc.Update(context.Background(), "u1", domain.ProfileUpdate{}); !errors.Is(err, domain.ErrEmptyUpdate) {
		t.Fatalf("expected ErrEmptyUpdate, got %v", err)
	}
}
