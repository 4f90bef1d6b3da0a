package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/splitledger/splitledger/internal/auth"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// AuthService handles registration, login, and account lookups, issuing
// session tokens.
type AuthService struct {
	authenticator auth.Authenticator
	tokens        *auth.JWTManager
	store         storage.Store
}

// NewAuthService creates an AuthService.
func NewAuthService(authenticator auth.Authenticator, tokens *auth.JWTManager, store storage.Store) *AuthService {
	return &AuthService{authenticator: authenticator, tokens: tokens, store: store}
}

// Register creates an account and returns the user with a session token.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*models.User, string, error) {
	user, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// CurrentUser loads the account behind a session.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

// FindUserByEmail looks up a registered account by email, for finding people
// to add to a group. Returns storage.ErrNotFound if no account matches.
func (s *AuthService) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrBadInput)
	}
	return s.store.GetUserByEmail(ctx, email)
}

// Login verifies credentials and returns the user with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}
