package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/phrazzld/taskr-api/internal/platform/logger"
	"github.com/phrazzld/taskr-api/internal/store"
)

// Hasher hashes new passwords and verifies submitted ones.
type Hasher interface {
	PasswordHasher
	PasswordVerifier
}

// Service registers users, logs them in and verifies their tokens.
type Service struct {
	users     store.UserStore
	tokens    JWTService
	hasher    Hasher
	dummyHash string
	logger    *slog.Logger
}

// NewService creates an authentication service.
// A throwaway hash is computed once so that logins for unknown usernames
// still pay for a bcrypt comparison.
func NewService(users store.UserStore, tokens JWTService, hasher Hasher, logger *slog.Logger) (*Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user store cannot be nil")
	}
	if tokens == nil {
		return nil, fmt.Errorf("jwt service cannot be nil")
	}
	if hasher == nil {
		return nil, fmt.Errorf("password hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dummy, err := hasher.Hash("dummy-password-for-timing")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &Service{
		users:     users,
		tokens:    tokens,
		hasher:    hasher,
		dummyHash: dummy,
		logger:    logger.With(slog.String("component", "auth_service")),
	}, nil
}

// Register creates a user and returns an access token for it.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	username = domain.NormalizeUsername(username)

	if err := domain.ValidateCredentials(username, password); err != nil {
		return "", err
	}

	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		log.Debug("registration rejected: username taken", "username", username)
		return "", ErrDuplicateUser
	case !errors.Is(err, store.ErrUserNotFound):
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		ID:             uuid.New(),
		Username:       username,
		HashedPassword: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			// Lost a race with a concurrent registration.
			return "", ErrDuplicateUser
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return "", err
	}

	log.Info("user registered", "user_id", user.ID)
	return token, nil
}

// Login checks credentials and returns a fresh access token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	username = domain.NormalizeUsername(username)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			return "", fmt.Errorf("failed to look up user: %w", err)
		}
		_ = s.hasher.Compare(s.dummyHash, password)
		log.Debug("login failed: unknown user")
		return "", ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login failed: password mismatch", "user_id", user.ID)
		return "", ErrInvalidCredentials
	}

	return s.tokens.GenerateToken(ctx, user.ID)
}

// VerifyToken returns the user id carried by a valid access token.
func (s *Service) VerifyToken(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := s.tokens.ValidateToken(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.UserID, nil
}
