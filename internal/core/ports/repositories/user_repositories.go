package repositories

import (
	"context"

	"github.com/SscSPs/finance_dashboard/internal/core/domain"
)

// UserReader defines read operations for the user directory
type UserReader interface {
	// ListUsers returns the whole directory. Unreadable data yields an empty directory.
	ListUsers(ctx context.Context) []domain.User
}

// UserWriter defines write operations for the user directory
type UserWriter interface {
	// SaveUsers replaces the whole directory.
	SaveUsers(ctx context.Context, users []domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// SessionRepository persists the currently signed-in user.
type SessionRepository interface {
	// CurrentUser returns the signed-in user, if any.
	CurrentUser(ctx context.Context) (*domain.User, bool)

	// SetCurrentUser records user as signed in.
	SetCurrentUser(ctx context.Context, user domain.User) error

	// ClearCurrentUser signs the current user out.
	ClearCurrentUser(ctx context.Context) error
}
