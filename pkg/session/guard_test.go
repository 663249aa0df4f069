package session

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/neuronet-health/neuronet/pkg/roles"
)

// storeWith builds a Store in a known state without any network traffic.
func storeWith(user *User, loading bool, nav Navigator) *Store {
	s := NewStore(NewClient("http://identity.invalid"), NewMemoryTokenStore(), nav, zerolog.Nop())
	s.mu.Lock()
	s.user = user
	s.loading = loading
	s.mu.Unlock()
	return s
}

func TestGuard_Loading(t *testing.T) {
	guard := NewGuard(roles.Therapist)
	s := storeWith(nil, true, nil)

	d := guard.Evaluate(s)
	if d.Outcome != OutcomeLoading {
		t.Fatalf("expected loading outcome, got %v", d.Outcome)
	}
	if d.Path != "" {
		t.Fatalf("loading must not carry a redirect path, got %q", d.Path)
	}
}

func TestGuard_Anonymous_RedirectsToLogin(t *testing.T) {
	guard := NewGuard(roles.Therapist)
	nav := &recordingNavigator{}
	s := storeWith(nil, false, nav)

	d := guard.Evaluate(s)
	if d.Outcome != OutcomeRedirect || d.Path != "/login" {
		t.Fatalf("expected redirect to /login, got %+v", d)
	}

	if guard.Protect(s) {
		t.Fatalf("Protect must not render for anonymous session")
	}
	if nav.last() != "/login" {
		t.Fatalf("expected navigation to /login, got %q", nav.last())
	}
}

func TestGuard_WrongRole_RedirectsToOwnDashboard(t *testing.T) {
	guard := NewGuard(roles.Therapist)
	nav := &recordingNavigator{}
	s := storeWith(&User{ID: "u1", Role: "user", IsActive: true}, false, nav)

	d := guard.Evaluate(s)
	if d.Outcome != OutcomeRedirect {
		t.Fatalf("expected redirect, got %v", d.Outcome)
	}
	// The visitor goes to their own area, never to an error page.
	if d.Path != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", d.Path)
	}

	if guard.Protect(s) {
		t.Fatalf("children must never render for a disallowed role")
	}
	if nav.last() != "/dashboard" {
		t.Fatalf("expected navigation to /dashboard, got %q", nav.last())
	}
}

func TestGuard_UnknownRole_RedirectsToOnboarding(t *testing.T) {
	guard := NewGuard(roles.User)
	s := storeWith(&User{ID: "u1", Role: "admin", IsActive: true}, false, nil)

	d := guard.Evaluate(s)
	if d.Outcome != OutcomeRedirect || d.Path != roles.PathOnboarding {
		t.Fatalf("expected redirect to onboarding, got %+v", d)
	}
}

func TestGuard_AllowedRole_Renders(t *testing.T) {
	guard := NewGuard(roles.Buddy, roles.Therapist)
	nav := &recordingNavigator{}
	s := storeWith(&User{ID: "u1", Role: "buddy", IsActive: true}, false, nav)

	d := guard.Evaluate(s)
	if d.Outcome != OutcomeRender {
		t.Fatalf("expected render, got %+v", d)
	}
	if !guard.Protect(s) {
		t.Fatalf("Protect must render for an allowed role")
	}
	if nav.last() != "" {
		t.Fatalf("no navigation expected, got %q", nav.last())
	}
}

func TestGuard_RoleCasingNormalized(t *testing.T) {
	guard := NewGuard(roles.Therapist)
	s := storeWith(&User{ID: "u1", Role: "  Therapist ", IsActive: true}, false, nil)

	if d := guard.Evaluate(s); d.Outcome != OutcomeRender {
		t.Fatalf("expected render for normalized role, got %+v", d)
	}
}
