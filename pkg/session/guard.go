package session

import (
	"github.com/neuronet-health/neuronet/pkg/roles"
)

// Outcome is the guard's verdict on a view.
type Outcome int

const (
	// OutcomeLoading means the session is still resolving; show a neutral
	// placeholder and re-evaluate when the state settles. No navigation.
	OutcomeLoading Outcome = iota
	// OutcomeRedirect means the visitor belongs elsewhere; Path says where.
	OutcomeRedirect
	// OutcomeRender means the view may be shown unmodified.
	OutcomeRender
)

// Decision is an Outcome plus the redirect target when applicable.
type Decision struct {
	Outcome Outcome
	Path    string
}

// Guard gates a protected view on an allow-list of roles. A role mismatch is
// a routing decision, not an error: the visitor is sent to their own
// dashboard, never to an error page.
type Guard struct {
	allowed map[roles.Role]struct{}
}

// NewGuard builds a Guard allowing the given roles.
func NewGuard(allowed ...roles.Role) *Guard {
	set := make(map[roles.Role]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}
	return &Guard{allowed: set}
}

// Evaluate inspects the session and decides what to do with the view. The
// caller re-evaluates whenever session state changes; Evaluate itself has no
// side effects.
func (g *Guard) Evaluate(s *Store) Decision {
	if s.IsLoading() {
		return Decision{Outcome: OutcomeLoading}
	}

	user := s.User()
	if user == nil {
		return Decision{Outcome: OutcomeRedirect, Path: roles.PathLogin}
	}

	if _, ok := g.allowed[roles.Normalize(user.Role)]; !ok {
		return Decision{Outcome: OutcomeRedirect, Path: roles.ResolveDashboard(user.Role)}
	}

	return Decision{Outcome: OutcomeRender}
}

// Protect evaluates the guard and applies any redirect through the store's
// navigator. It reports whether the view should render.
func (g *Guard) Protect(s *Store) bool {
	d := g.Evaluate(s)
	if d.Outcome == OutcomeRedirect {
		s.nav.Navigate(d.Path)
	}
	return d.Outcome == OutcomeRender
}
