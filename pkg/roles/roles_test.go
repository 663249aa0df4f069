package roles

import "testing"

func TestResolveDashboard_KnownRoles(t *testing.T) {
	cases := []struct {
		role string
		want string
	}{
		{"user", "/dashboard"},
		{"therapist", "/therapist/dashboard"},
		{"buddy", "/buddy/dashboard"},
		{"User", "/dashboard"},
		{"THERAPIST", "/therapist/dashboard"},
		{"  buddy  ", "/buddy/dashboard"},
		{"\tTherapist\n", "/therapist/dashboard"},
	}

	for _, tc := range cases {
		if got := ResolveDashboard(tc.role); got != tc.want {
			t.Errorf("ResolveDashboard(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestResolveDashboard_UnknownRole(t *testing.T) {
	for _, role := range []string{"admin", "superuser", "patient", "x"} {
		if got := ResolveDashboard(role); got != PathOnboarding {
			t.Errorf("ResolveDashboard(%q) = %q, want %q", role, got, PathOnboarding)
		}
	}
}

func TestResolveDashboard_AbsentRole(t *testing.T) {
	for _, role := range []string{"", "   ", "\t\n"} {
		if got := ResolveDashboard(role); got != PathDefault {
			t.Errorf("ResolveDashboard(%q) = %q, want %q", role, got, PathDefault)
		}
	}
}

func TestIsValid(t *testing.T) {
	cases := []struct {
		role string
		want bool
	}{
		{"user", true},
		{"therapist", true},
		{"buddy", true},
		{"  User ", true},
		{"BUDDY", true},
		{"", false},
		{"admin", false},
		{"therapists", false},
	}

	for _, tc := range cases {
		if got := IsValid(tc.role); got != tc.want {
			t.Errorf("IsValid(%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		role string
		want string
	}{
		{"user", "User"},
		{"therapist", "Therapist"},
		{"buddy", "Peer Buddy"},
		{"Buddy", "Peer Buddy"},
		{"admin", "Unknown"},
		{"", "Unknown"},
	}

	for _, tc := range cases {
		if got := DisplayName(tc.role); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestAll_CoversDashboards(t *testing.T) {
	if len(All()) != len(dashboards) {
		t.Fatalf("All() has %d roles, dashboard table has %d", len(All()), len(dashboards))
	}
	for _, r := range All() {
		if _, ok := dashboards[r]; !ok {
			t.Errorf("role %q missing from dashboard table", r)
		}
	}
}
