package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// recordingNavigator captures navigation targets in order.
type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

// identityStub is a minimal in-memory identity service.
type identityStub struct {
	token      string
	user       User
	loginCode  int
	loginError string
	meCode     int
	registered []map[string]string
}

func (s *identityStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		if s.loginCode != 0 {
			w.WriteHeader(s.loginCode)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": s.loginError})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": s.token, "token_type": "bearer"})
	})
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.registered = append(s.registered, req)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "User registered successfully", "user_id": s.user.ID})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if s.meCode != 0 {
			w.WriteHeader(s.meCode)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "could not validate credentials"})
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "could not validate credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(s.user)
	})
	return mux
}

func newTestStore(t *testing.T, stub *identityStub) (*Store, *MemoryTokenStore, *recordingNavigator) {
	t.Helper()
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	tokens := NewMemoryTokenStore()
	nav := &recordingNavigator{}
	store := NewStore(NewClient(srv.URL), tokens, nav, zerolog.Nop())
	return store, tokens, nav
}

func TestStore_Login_Success(t *testing.T) {
	stub := &identityStub{
		token: "T",
		user:  User{ID: "u1", Email: "a@b.com", Role: "buddy", IsActive: true},
	}
	store, tokens, nav := newTestStore(t, stub)

	if err := store.Login(context.Background(), "a@b.com", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if got, _ := tokens.Load(); got != "T" {
		t.Fatalf("expected persisted token %q, got %q", "T", got)
	}
	user := store.User()
	if user == nil || user.Role != "buddy" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if !store.IsAuthenticated() {
		t.Fatalf("expected authenticated session")
	}
	if nav.last() != "/buddy/dashboard" {
		t.Fatalf("expected navigation to /buddy/dashboard, got %q", nav.last())
	}
}

func TestStore_Login_InvalidCredentials(t *testing.T) {
	stub := &identityStub{loginCode: http.StatusUnauthorized, loginError: "incorrect email or password"}
	store, tokens, _ := newTestStore(t, stub)

	err := store.Login(context.Background(), "a@b.com", "bad")
	if err == nil {
		t.Fatalf("expected error")
	}

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %T: %v", err, err)
	}
	if authErr.Message != "incorrect email or password" {
		t.Fatalf("expected service message, got %q", authErr.Message)
	}
	if got, _ := tokens.Load(); got != "" {
		t.Fatalf("token must not be persisted on failure, got %q", got)
	}
	if store.IsAuthenticated() {
		t.Fatalf("session must stay anonymous")
	}
}

func TestStore_Login_ServiceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	store := NewStore(NewClient(srv.URL), NewMemoryTokenStore(), nil, zerolog.Nop())

	err := store.Login(context.Background(), "a@b.com", "pw")
	var connErr *ConnectivityError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *ConnectivityError, got %T: %v", err, err)
	}
}

func TestStore_Register_AutoLogin(t *testing.T) {
	stub := &identityStub{
		token: "T2",
		user:  User{ID: "u2", Email: "new@b.com", Role: "therapist", IsActive: true},
	}
	store, tokens, nav := newTestStore(t, stub)

	if err := store.Register(context.Background(), "new@b.com", "password1", "therapist"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if len(stub.registered) != 1 || stub.registered[0]["role"] != "therapist" {
		t.Fatalf("unexpected registration payload: %+v", stub.registered)
	}
	if got, _ := tokens.Load(); got != "T2" {
		t.Fatalf("expected auto-login to persist token, got %q", got)
	}
	if nav.last() != "/therapist/dashboard" {
		t.Fatalf("expected navigation to /therapist/dashboard, got %q", nav.last())
	}
}

func TestStore_Init_NoToken(t *testing.T) {
	stub := &identityStub{}
	store, _, nav := newTestStore(t, stub)

	if !store.IsLoading() {
		t.Fatalf("expected loading before Init")
	}

	store.Init(context.Background())

	if store.IsLoading() {
		t.Fatalf("expected loading resolved after Init")
	}
	if store.IsAuthenticated() {
		t.Fatalf("expected anonymous session")
	}
	if nav.last() != "" {
		t.Fatalf("Init must not navigate, got %q", nav.last())
	}
}

func TestStore_Init_ValidToken(t *testing.T) {
	stub := &identityStub{
		token: "T3",
		user:  User{ID: "u3", Email: "a@b.com", Role: "user", IsActive: true},
	}
	store, tokens, nav := newTestStore(t, stub)
	_ = tokens.Save("T3")

	store.Init(context.Background())

	if !store.IsAuthenticated() {
		t.Fatalf("expected authenticated session")
	}
	if nav.last() != "" {
		t.Fatalf("Init must not navigate, got %q", nav.last())
	}
}

func TestStore_Init_StaleToken_SilentRecovery(t *testing.T) {
	stub := &identityStub{meCode: http.StatusUnauthorized}
	store, tokens, _ := newTestStore(t, stub)
	_ = tokens.Save("expired")

	// Must not panic or surface an error; the session just comes up anonymous.
	store.Init(context.Background())

	if got, _ := tokens.Load(); got != "" {
		t.Fatalf("stale token must be cleared, got %q", got)
	}
	if store.IsAuthenticated() {
		t.Fatalf("expected anonymous session")
	}
	if store.IsLoading() {
		t.Fatalf("expected loading resolved")
	}
}

func TestStore_Logout(t *testing.T) {
	stub := &identityStub{
		token: "T4",
		user:  User{ID: "u4", Email: "a@b.com", Role: "user", IsActive: true},
	}
	store, tokens, nav := newTestStore(t, stub)

	if err := store.Login(context.Background(), "a@b.com", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	store.Logout()

	if got, _ := tokens.Load(); got != "" {
		t.Fatalf("expected token cleared, got %q", got)
	}
	if store.IsAuthenticated() {
		t.Fatalf("expected anonymous session")
	}
	if nav.last() != "/login" {
		t.Fatalf("expected navigation to /login, got %q", nav.last())
	}
}
