package services

import (
	"context"
	"time"

	"github.com/SscSPs/finance_dashboard/internal/core/domain"
)

// AuthReaderSvc reads the signed-in session.
type AuthReaderSvc interface {
	// CurrentSession returns the signed-in session, if any.
	CurrentSession(ctx context.Context) (*domain.Session, bool)
}

// AuthWriterSvc changes the user directory and the session.
type AuthWriterSvc interface {
	// Register creates a user and signs them in.
	Register(ctx context.Context, email, password, name string) (*domain.User, error)

	// Login signs in the single user matching email and password.
	Login(ctx context.Context, email, password string) (*domain.User, error)

	// Logout clears the session. The directory is untouched.
	Logout(ctx context.Context) error

	// UpdateProfile changes a user's name and email.
	UpdateProfile(ctx context.Context, userID, name, email string) (*domain.User, error)

	// UpdatePassword replaces a user's password after checking the current one.
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// AuthSvcFacade combines all auth service interfaces
type AuthSvcFacade interface {
	AuthReaderSvc
	AuthWriterSvc
}

// TokenSvc issues and validates bearer tokens.
type TokenSvc interface {
	// GenerateAccessToken creates a signed token for user and returns its expiry.
	GenerateAccessToken(ctx context.Context, user domain.User) (string, time.Time, error)

	// ValidateAccessToken checks a token and returns the user ID it was issued for.
	ValidateAccessToken(ctx context.Context, token string) (string, error)
}
