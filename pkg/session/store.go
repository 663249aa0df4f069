package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/neuronet-health/neuronet/pkg/roles"
)

// Navigator receives the navigation side effects of the store and the guard:
// post-login redirects, the logout redirect, and guard corrections.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// NopNavigator discards navigation. Useful for headless consumers that only
// care about session state.
type NopNavigator struct{}

func (NopNavigator) Navigate(string) {}

// Store owns the authenticated identity for this process: the single source
// of truth every guarded view reads. It is constructed explicitly and passed
// to its consumers; there is no package-level instance. The store is the only
// writer of its state; consumers observe through User, IsAuthenticated, and
// IsLoading.
type Store struct {
	client *Client
	tokens TokenStore
	nav    Navigator
	log    zerolog.Logger

	mu      sync.RWMutex
	user    *User
	loading bool
}

// NewStore wires a Store from its collaborators. Call Init to resolve any
// persisted token before consulting the derived state.
func NewStore(client *Client, tokens TokenStore, nav Navigator, log zerolog.Logger) *Store {
	if nav == nil {
		nav = NopNavigator{}
	}
	return &Store{
		client:  client,
		tokens:  tokens,
		nav:     nav,
		log:     log,
		loading: true,
	}
}

// Init resolves the persisted token, if any: present → fetch the user record
// (session loads as authenticated or falls back to anonymous); absent → the
// session is immediately anonymous. Init never returns a user-facing error;
// every failure path degrades to an anonymous session.
func (s *Store) Init(ctx context.Context) {
	token, err := s.tokens.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("token storage unreadable, starting anonymous")
		token = ""
	}

	if token == "" {
		s.setAnonymous()
		return
	}
	s.fetchUser(ctx, token, false)
}

// Login authenticates against the identity service. On success the token is
// persisted, the user record is fetched, and the navigator is pointed at the
// role-resolved dashboard. The returned error is an *AuthError carrying the
// service's message, or a *ConnectivityError when the service is unreachable.
//
// Only one Login/Register call is meaningful at a time; callers await
// completion before issuing another.
func (s *Store) Login(ctx context.Context, email, password string) error {
	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := s.tokens.Save(token); err != nil {
		s.log.Warn().Err(err).Msg("token not persisted, session will not survive restart")
	}

	s.fetchUser(ctx, token, true)
	return nil
}

// Register creates an account and chains into Login with the same
// credentials (auto-login).
func (s *Store) Register(ctx context.Context, email, password, role string) error {
	if err := s.client.Register(ctx, email, password, role); err != nil {
		return err
	}
	return s.Login(ctx, email, password)
}

// Logout clears the persisted token and the in-memory user, then navigates
// to the login page. No network call; always succeeds.
func (s *Store) Logout() {
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("token storage not cleared")
	}

	s.mu.Lock()
	s.user = nil
	s.loading = false
	s.mu.Unlock()

	s.nav.Navigate(roles.PathLogin)
}

// Profile fetches the authenticated user's profile.
func (s *Store) Profile(ctx context.Context) (*UserProfile, error) {
	return s.client.Profile(ctx, s.token())
}

// UpdateProfile applies a partial update to the authenticated user's profile.
func (s *Store) UpdateProfile(ctx context.Context, update ProfileUpdate) (*UserProfile, error) {
	return s.client.UpdateProfile(ctx, s.token(), update)
}

// User returns the current user, nil when anonymous.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a user record is loaded.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// IsLoading reports whether the initial token check is still unresolved.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// fetchUser resolves a token into a user record. Any failure — expired token,
// vanished account, unreachable service — clears the persisted token and
// leaves the session anonymous. This is silent recovery, not an error: the
// next screen the user sees is the login page, not a failure message.
func (s *Store) fetchUser(ctx context.Context, token string, shouldRedirect bool) {
	user, err := s.client.Me(ctx, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("session token not accepted, starting anonymous")
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.log.Warn().Err(clearErr).Msg("token storage not cleared")
		}
		s.setAnonymous()
		return
	}

	s.mu.Lock()
	s.user = user
	s.loading = false
	s.mu.Unlock()

	if shouldRedirect {
		s.nav.Navigate(roles.ResolveDashboard(user.Role))
	}
}

func (s *Store) setAnonymous() {
	s.mu.Lock()
	s.user = nil
	s.loading = false
	s.mu.Unlock()
}

// token reads the persisted token for request use; empty when anonymous.
func (s *Store) token() string {
	token, err := s.tokens.Load()
	if err != nil {
		return ""
	}
	return token
}
