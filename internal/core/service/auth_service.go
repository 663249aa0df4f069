package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/neuronet-health/neuronet/internal/core/domain"
	"github.com/neuronet-health/neuronet/internal/core/ports"
	"github.com/neuronet-health/neuronet/pkg/roles"
)

const minPasswordLength = 8

// AuthService implements registration, login, and current-user lookup for the
// identity service. Tokens are HS256 JWTs carrying sub (user id), email, and
// role claims.
type AuthService struct {
	users     ports.UserRepository
	profiles  ports.ProfileRepository
	throttle  ports.LoginThrottle
	audit     ports.AuditSink
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	throttle ports.LoginThrottle,
	audit ports.AuditSink,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		profiles:  profiles,
		throttle:  throttle,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates a user account with a hashed password and an empty profile.
// The role must be a member of the closed enumeration; anything else is
// rejected, never silently accepted.
func (s *AuthService) Register(ctx context.Context, email, password, role string) (*domain.User, error) {
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}
	if !roles.IsValid(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         string(roles.Normalize(role)),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		s.emit(email, domain.AuditRegister, domain.OutcomeFailure, err.Error())
		return nil, err
	}

	if err := s.profiles.CreateEmpty(ctx, created.ID); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.emit(email, domain.AuditRegister, domain.OutcomeSuccess, "")
	return created, nil
}

// Login verifies credentials and returns a signed access token. Unknown email
// and wrong password produce the same error so the response does not reveal
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if blocked, err := s.blocked(ctx, email); err == nil && blocked {
		s.emit(email, domain.AuditLogin, domain.OutcomeFailure, "throttled")
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email, "unknown email")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email, "bad password")
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.emit(email, domain.AuditLogin, domain.OutcomeFailure, "inactive account")
		return "", nil, domain.ErrInactiveUser
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}
	s.emit(email, domain.AuditLogin, domain.OutcomeSuccess, "")

	return token, user, nil
}

// CurrentUser resolves the user behind a validated token's subject claim.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// blocked consults the throttle, failing open on storage errors.
func (s *AuthService) blocked(ctx context.Context, email string) (bool, error) {
	if s.throttle == nil {
		return false, nil
	}
	blocked, err := s.throttle.Blocked(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		return false, err
	}
	return blocked, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email, reason string) {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle record failed")
		}
	}
	s.emit(email, domain.AuditLogin, domain.OutcomeFailure, reason)
}

func (s *AuthService) emit(actor, action, outcome, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEvent{
		Actor:   actor,
		Action:  action,
		Outcome: outcome,
		Reason:  reason,
		At:      time.Now().UTC(),
	})
}
