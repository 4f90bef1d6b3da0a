// Package auth provides password-based authentication and JWT session tokens.
package auth

import (
	"context"
	"errors"

	"github.com/splitledger/splitledger/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingToken       = errors.New("authorization token required")
)

// Authenticator abstracts the credential scheme so the service layer does not
// depend on bcrypt directly.
type Authenticator interface {
	// Register creates a new user account.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies credentials and returns the user if they match.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
