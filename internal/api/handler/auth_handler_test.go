package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/neuronet-health/neuronet/internal/core/domain"
)

type stubAuthService struct {
	registerFn    func(ctx context.Context, email, password, role string) (*domain.User, error)
	loginFn       func(ctx context.Context, email, password string) (string, *domain.User, error)
	currentUserFn func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password, role string) (*domain.User, error) {
	return s.registerFn(ctx, email, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.currentUserFn(ctx, userID)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("invalid JSON response %q: %v", rec.Body.String(), err)
	}
}

func TestAuthHandler_Register_Created(t *testing.T) {
	svc := &stubAuthService{
		registerFn: func(_ context.Context, email, password, role string) (*domain.User, error) {
			if email != "alice@example.com" || password != "pass1234" || role != "buddy" {
				t.Fatalf("unexpected register args: %s %s %s", email, password, role)
			}
			return &domain.User{ID: "u1", Email: email, Role: role, IsActive: true}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","password":"pass1234","role":"buddy"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp registerResponse
	decodeJSON(t, rec, &resp)
	if resp.UserID != "u1" {
		t.Errorf("user_id = %s, want u1", resp.UserID)
	}
	if resp.Message != "User registered successfully" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
}

func TestAuthHandler_Register_ValidationFailures(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			t.Fatal("service must not be called for invalid payloads")
			return nil, nil
		},
	})

	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"pass1234","role":"user"}`},
		{"bad email", `{"email":"nope","password":"pass1234","role":"user"}`},
		{"short password", `{"email":"a@b.com","password":"short","role":"user"}`},
		{"bad role", `{"email":"a@b.com","password":"pass1234","role":"admin"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t, http.MethodPost, "/auth/register", tt.body)
			if err := h.Register(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", rec.Code)
			}
			var resp errorResponse
			decodeJSON(t, rec, &resp)
			if resp.Error == "" {
				t.Errorf("expected error message in body")
			}
		})
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"email":"dup@example.com","password":"pass1234","role":"user"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			return "tok123", &domain.User{ID: "u1", Email: email, Role: "user"}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"pass1234"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp tokenResponse
	decodeJSON(t, rec, &resp)
	if resp.AccessToken != "tok123" {
		t.Errorf("access_token = %s, want tok123", resp.AccessToken)
	}
	if resp.TokenType != "bearer" {
		t.Errorf("token_type = %s, want bearer", resp.TokenType)
	}
}

func TestAuthHandler_Login_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"inactive account", domain.ErrInactiveUser, http.StatusForbidden},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&stubAuthService{
				loginFn: func(context.Context, string, string) (string, *domain.User, error) {
					return "", nil, tt.err
				},
			})

			c, rec := newTestContext(t, http.MethodPost, "/auth/login",
				`{"email":"alice@example.com","password":"bad"}`)

			if err := h.Login(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp errorResponse
			decodeJSON(t, rec, &resp)
			if resp.Error != tt.err.Error() {
				t.Errorf("error = %q, want %q", resp.Error, tt.err.Error())
			}
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		currentUserFn: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &domain.User{ID: "u1", Email: "alice@example.com", Role: "therapist", IsActive: true}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodGet, "/auth/me", "")
	c.Set("user_id", "u1")

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp userResponse
	decodeJSON(t, rec, &resp)
	if resp.Email != "alice@example.com" || resp.Role != "therapist" || !resp.IsActive {
		t.Errorf("unexpected body: %+v", resp)
	}
}

func TestAuthHandler_Me_StaleToken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		currentUserFn: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	})

	c, rec := newTestContext(t, http.MethodGet, "/auth/me", "")
	c.Set("user_id", "gone")

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var resp errorResponse
	decodeJSON(t, rec, &resp)
	if resp.Error != "could not validate credentials" {
		t.Errorf("unexpected error: %s", resp.Error)
	}
}

func TestAuthHandler_Me_MissingClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		currentUserFn: func(context.Context, string) (*domain.User, error) {
			t.Fatal("service must not be called without claims")
			return nil, nil
		},
	})

	c, _ := newTestContext(t, http.MethodGet, "/auth/me", "")

	err := h.Me(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", httpErr.Code)
	}
}
