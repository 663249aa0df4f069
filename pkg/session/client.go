// Package session implements the client half of the NeuroNet identity
// system: an HTTP client for the identity service, a session store holding
// the authenticated user for the lifetime of the process, and a role guard
// that gates views by redirecting rather than erroring.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// User is the cached, read-mostly copy of the identity service's user record
// held for the session lifetime.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// ProfileData mirrors the profile fields served by /users/profile.
type ProfileData struct {
	FullName  *string  `json:"full_name"`
	Age       *int     `json:"age"`
	Gender    *string  `json:"gender"`
	Languages []string `json:"languages"`
	Interests []string `json:"interests"`
}

// UserProfile is the combined identity + profile payload.
type UserProfile struct {
	ID      string      `json:"id"`
	Email   string      `json:"email"`
	Role    string      `json:"role"`
	Profile ProfileData `json:"profile"`
}

// ProfileUpdate is a partial profile update; nil fields are left untouched.
type ProfileUpdate struct {
	FullName  *string  `json:"full_name,omitempty"`
	Age       *int     `json:"age,omitempty"`
	Gender    *string  `json:"gender,omitempty"`
	Languages []string `json:"languages,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

// Client talks to the identity service over HTTP. All failures are reported
// as either *AuthError (the service rejected the request) or
// *ConnectivityError (the service could not be reached).
type Client struct {
	base string
	http *http.Client
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a Client for the identity service at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Register creates an account. The caller is expected to follow up with Login.
func (c *Client) Register(ctx context.Context, email, password, role string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", registerRequest{Email: email, Password: password, Role: role}, nil)
}

// Me fetches the user record behind a token.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context, token string) (*UserProfile, error) {
	var up UserProfile
	if err := c.do(ctx, http.MethodGet, "/users/profile", token, nil, &up); err != nil {
		return nil, err
	}
	return &up, nil
}

// UpdateProfile applies a partial profile update.
func (c *Client) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*UserProfile, error) {
	var up UserProfile
	if err := c.do(ctx, http.MethodPut, "/users/profile", token, update, &up); err != nil {
		return nil, err
	}
	return &up, nil
}

// do performs one request/response cycle against the identity service.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &AuthError{Message: decodeErrorMessage(resp), Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeErrorMessage pulls the message out of the service's error envelope,
// accepting both the {"error": ...} and the legacy {"detail": ...} shapes.
func decodeErrorMessage(resp *http.Response) string {
	var envelope struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Detail != "" {
			return envelope.Detail
		}
	}
	return http.StatusText(resp.StatusCode)
}
