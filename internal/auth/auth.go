// Package auth implements manager-mode authentication: password accounts
// backed by bcrypt plus stateless JWT sessions. Read endpoints are open to
// the household; anything that modifies data requires a manager token.
package auth

import (
	"context"
	"errors"

	"github.com/mmynk/homebills/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingToken       = errors.New("authorization token required")
)

// UserStorage defines the persistence operations the authenticator needs.
// Keeping this narrow lets the authenticator stay independent of the full
// storage.Store interface.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Authenticator is the interface for authentication implementations,
// allowing the credential scheme to change without touching the server
// layer.
type Authenticator interface {
	// Register creates a new manager account.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies credentials and returns the user if valid.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks a credential against the implementation's
	// requirements before any account is touched.
	ValidateCredential(credential string) error
}
