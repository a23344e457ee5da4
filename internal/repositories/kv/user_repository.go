package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_dashboard/internal/apperrors"
	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_dashboard/internal/core/ports/repositories"
)

// UserRepository stores the user directory as a JSON array under UsersKey.
type UserRepository struct {
	store  portsrepo.KeyValueStore
	logger *slog.Logger
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func NewUserRepository(store portsrepo.KeyValueStore, logger *slog.Logger) *UserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserRepository{store: store, logger: logger}
}

func (r *UserRepository) ListUsers(ctx context.Context) []domain.User {
	users := []domain.User{}
	if r.store == nil {
		return users
	}

	raw, ok, err := r.store.Get(ctx, UsersKey)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to read user directory", slog.String("error", err.Error()))
		return users
	}
	if !ok {
		return users
	}
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		r.logger.WarnContext(ctx, "Ignoring unreadable user directory", slog.String("error", err.Error()))
		return []domain.User{}
	}
	return users
}

func (r *UserRepository) SaveUsers(ctx context.Context, users []domain.User) error {
	if r.store == nil {
		return apperrors.ErrStorageUnavailable
	}
	if users == nil {
		users = []domain.User{}
	}
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("%w: user directory: %v", apperrors.ErrSerialization, err)
	}
	if err := r.store.Set(ctx, UsersKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save user directory: %w", err)
	}
	return nil
}

// SessionRepository stores the signed-in user as a JSON object under SessionKey.
type SessionRepository struct {
	store  portsrepo.KeyValueStore
	logger *slog.Logger
}

var _ portsrepo.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(store portsrepo.KeyValueStore, logger *slog.Logger) *SessionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionRepository{store: store, logger: logger}
}

func (r *SessionRepository) CurrentUser(ctx context.Context) (*domain.User, bool) {
	if r.store == nil {
		return nil, false
	}

	raw, ok, err := r.store.Get(ctx, SessionKey)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to read session", slog.String("error", err.Error()))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		r.logger.WarnContext(ctx, "Ignoring unreadable session", slog.String("error", err.Error()))
		return nil, false
	}
	return &user, true
}

func (r *SessionRepository) SetCurrentUser(ctx context.Context, user domain.User) error {
	if r.store == nil {
		return apperrors.ErrStorageUnavailable
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: session: %v", apperrors.ErrSerialization, err)
	}
	if err := r.store.Set(ctx, SessionKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) ClearCurrentUser(ctx context.Context) error {
	if r.store == nil {
		return apperrors.ErrStorageUnavailable
	}
	if err := r.store.Remove(ctx, SessionKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
