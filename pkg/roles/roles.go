// Package roles is the single source of truth for the platform's closed role
// enumeration and the role → dashboard route mapping. Both the identity
// service (registration validation) and the session client (guard redirects)
// resolve roles through this table; nothing else compares role strings.
package roles

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Role is a closed category of platform user.
type Role string

const (
	User      Role = "user"
	Therapist Role = "therapist"
	Buddy     Role = "buddy"
)

// Fallback routes for sessions that cannot be mapped to a dashboard.
const (
	PathLogin      = "/login"
	PathOnboarding = "/onboarding"
	PathDefault    = "/dashboard"
)

// dashboards maps each role to its dashboard route.
var dashboards = map[Role]string{
	User:      "/dashboard",
	Therapist: "/therapist/dashboard",
	Buddy:     "/buddy/dashboard",
}

var displayNames = map[Role]string{
	User:      "User",
	Therapist: "Therapist",
	Buddy:     "Peer Buddy",
}

// Normalize trims whitespace and lowercases a raw role string.
func Normalize(role string) Role {
	return Role(strings.ToLower(strings.TrimSpace(role)))
}

// IsValid reports whether the raw role string normalizes to a member of the
// enumeration.
func IsValid(role string) bool {
	_, ok := dashboards[Normalize(role)]
	return ok
}

// ResolveDashboard returns the dashboard route for a raw role string.
// An absent role falls back to PathDefault; a role outside the enumeration
// falls back to PathOnboarding. Never fails; unmapped input is reported on
// the diagnostic log only.
func ResolveDashboard(role string) string {
	if strings.TrimSpace(role) == "" {
		log.Warn().Msg("no role provided, routing to default dashboard")
		return PathDefault
	}

	if path, ok := dashboards[Normalize(role)]; ok {
		return path
	}

	log.Warn().Str("role", role).Msg("unknown role, routing to onboarding")
	return PathOnboarding
}

// DisplayName returns the human-readable name for a role, "Unknown" for any
// role outside the enumeration.
func DisplayName(role string) string {
	if name, ok := displayNames[Normalize(role)]; ok {
		return name
	}
	return "Unknown"
}

// All returns the members of the enumeration in a stable order.
func All() []Role {
	return []Role{User, Therapist, Buddy}
}
