package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"quarryledger/internal/core/apperror"
	"quarryledger/internal/core/id"
	"quarryledger/internal/realtime"
	"quarryledger/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	MaxLoginAttempts  int
	LockDuration      time.Duration
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxLoginAttempts:  5,
		LockDuration:      15 * time.Minute,
		PasswordMinLength: 8,
	}
}

// Service provides sign-in, sign-up and profile provisioning.
type Service struct {
	users      UserRepository
	jwtService *JWTService
	sessions   *Watchdog
	hub        *realtime.Hub
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(users UserRepository, jwtService *JWTService, sessions *Watchdog, hub *realtime.Hub, config ServiceConfig) *Service {
	return &Service{
		users:      users,
		jwtService: jwtService,
		sessions:   sessions,
		hub:        hub,
		config:     config,
	}
}

// SignIn authenticates credentials and opens a watched session.
// Failures are classified into stable categories: bad credentials for
// unknown email or wrong password (deliberately indistinguishable),
// rate-limited for a locked account, and a network category for store
// failures. Raw store errors never reach the client.
func (s *Service) SignIn(ctx context.Context, creds Credentials) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewInvalidCredentials()
		}
		return nil, apperror.NewNetwork(err)
	}

	if !user.IsActive {
		return nil, apperror.NewForbidden("account is disabled")
	}
	if user.IsLocked() {
		return nil, apperror.NewRateLimited("Access temporarily disabled due to repeated failed attempts. Try again later.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		user.RecordFailedLogin(s.config.MaxLoginAttempts, s.config.LockDuration)
		if updateErr := s.users.Update(ctx, user); updateErr != nil {
			logger.Warn(ctx, "failed login bookkeeping failed", "error", updateErr)
		}
		return nil, apperror.NewInvalidCredentials()
	}

	user.RecordSuccessfulLogin()
	if err := s.users.Update(ctx, user); err != nil {
		logger.Warn(ctx, "login bookkeeping failed", "error", err)
	}

	return s.openSession(ctx, user)
}

// SignUp registers a new clerk profile and opens a session for it.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*Session, error) {
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(req.Name, req.Email, string(passwordHash))
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, user.Email)
	if err != nil {
		return nil, apperror.NewNetwork(err)
	}
	if exists {
		return nil, apperror.NewDuplicate("user", "email", user.Email)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", "user_id", user.ID, "email", user.Email)
	s.hub.Publish(realtime.CollectionUsers)

	return s.openSession(ctx, user)
}

// EnsureProfile returns the stored profile for an authenticated
// identity, provisioning a default clerk profile on first sign-in when
// none exists yet.
func (s *Service) EnsureProfile(ctx context.Context, userID id.ID, name, email string) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	displayName := strings.TrimSpace(name)
	if displayName == "" {
		displayName = strings.Split(email, "@")[0]
	}

	user = NewUser(displayName, email, "")
	user.ID = userID
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "provisioned default clerk profile", "user_id", userID, "email", email)
	s.hub.Publish(realtime.CollectionUsers)
	return user, nil
}

// SignOut terminates the session.
func (s *Service) SignOut(_ context.Context, sessionID string) {
	s.sessions.Stop(sessionID)
}

// Profile returns a user by id.
func (s *Service) Profile(ctx context.Context, userID id.ID) (*User, error) {
	return s.users.GetByID(ctx, userID)
}

// ListUsers returns every profile. Handlers restrict this to admins.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.users.List(ctx)
}

// DisplayName resolves a user id to a display name, for denormalized
// owner fields.
func (s *Service) DisplayName(ctx context.Context, rawUserID string) (string, error) {
	userID, err := id.Parse(rawUserID)
	if err != nil {
		return "", apperror.NewValidation("invalid user id").WithDetail("userId", rawUserID)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Name, nil
}

func (s *Service) openSession(ctx context.Context, user *User) (*Session, error) {
	sessionID, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}

	token, expiresAt, err := s.jwtService.GenerateToken(user, sessionID)
	if err != nil {
		return nil, err
	}

	s.sessions.Start(sessionID)
	logger.Info(ctx, "session opened", "user_id", user.ID, "role", user.Role)

	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func newSessionID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", errors.New("entropy source unavailable")
	}
	return hex.EncodeToString(bytes), nil
}
