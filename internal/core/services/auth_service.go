package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/finance_dashboard/internal/apperrors"
	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_dashboard/internal/core/ports/repositories"
	"github.com/SscSPs/finance_dashboard/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService manages the local user directory and the signed-in session.
// Both are persisted independently of the ledger.
type AuthService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	sessionRepo portsrepo.SessionRepository
	hasher      utils.PasswordHasher
	newID       func() string
	now         func() time.Time

	// mu serializes directory and session writes. Each one reads the directory,
	// checks it and writes it back.
	mu sync.Mutex
}

// AuthServiceOption is a function that configures an AuthService
type AuthServiceOption func(*AuthService)

// WithPasswordHasher overrides the bcrypt cost, e.g. bcrypt.MinCost in tests.
func WithPasswordHasher(hasher utils.PasswordHasher) AuthServiceOption {
	return func(s *AuthService) { s.hasher = hasher }
}

// WithUserIDGenerator overrides how new user IDs are generated.
func WithUserIDGenerator(newID func() string) AuthServiceOption {
	return func(s *AuthService) { s.newID = newID }
}

// NewAuthService creates a new AuthService with the provided options
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, sessionRepo portsrepo.SessionRepository, opts ...AuthServiceOption) *AuthService {
	s := &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      utils.NewPasswordHasher(bcrypt.DefaultCost),
		newID:       uuid.NewString,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrentSession returns the signed-in user wrapped in a Session.
func (s *AuthService) CurrentSession(ctx context.Context) (*domain.Session, bool) {
	user, ok := s.sessionRepo.CurrentUser(ctx)
	if !ok {
		return nil, false
	}
	return &domain.Session{User: *user, IssuedAt: s.now().UTC()}, true
}

// Register appends a new user and signs them in. Emails are unique.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.TrimSpace(email)
	users := s.userRepo.ListUsers(ctx)
	if _, found := findUserByEmail(users, email); found {
		s.LogWarn(ctx, "Registration rejected, email already in use", slog.String("email", email))
		return nil, apperrors.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		ID:           s.newID(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
	}
	if err := s.userRepo.SaveUsers(ctx, append(users, user)); err != nil {
		s.LogError(ctx, err, "Failed to save user directory")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	if err := s.sessionRepo.SetCurrentUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to start session", slog.String("user_id", user.ID))
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.ID))
	return &user, nil
}

// Login signs in the single user whose email and password both match.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.TrimSpace(email)
	var matched []domain.User
	for _, u := range s.userRepo.ListUsers(ctx) {
		if strings.EqualFold(u.Email, email) && s.hasher.Matches(password, u.PasswordHash) {
			matched = append(matched, u)
		}
	}
	if len(matched) != 1 {
		s.LogWarn(ctx, "Login rejected", slog.String("email", email), slog.Int("matches", len(matched)))
		return nil, apperrors.ErrInvalidCredentials
	}

	user := matched[0]
	if err := s.sessionRepo.SetCurrentUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to start session", slog.String("user_id", user.ID))
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.ID))
	return &user, nil
}

// Logout ends the session. The directory is untouched.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessionRepo.ClearCurrentUser(ctx); err != nil {
		s.LogError(ctx, err, "Failed to clear session")
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// UpdateProfile changes the user's name and email in the directory and, if the user is
// signed in, in the session record.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, name, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.userRepo.ListUsers(ctx)
	i := indexOfUser(users, userID)
	if i < 0 {
		return nil, apperrors.ErrUserNotFound
	}

	email = strings.TrimSpace(email)
	if other, found := findUserByEmail(users, email); found && other.ID != userID {
		return nil, apperrors.ErrDuplicateEmail
	}

	users[i].Name = strings.TrimSpace(name)
	users[i].Email = email
	if err := s.persistUser(ctx, users, users[i]); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	updated := users[i]
	s.LogInfo(ctx, "User profile updated", slog.String("user_id", userID))
	return &updated, nil
}

// UpdatePassword replaces the password after verifying the current one.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.userRepo.ListUsers(ctx)
	i := indexOfUser(users, userID)
	if i < 0 {
		return apperrors.ErrUserNotFound
	}
	if !s.hasher.Matches(currentPassword, users[i].PasswordHash) {
		s.LogWarn(ctx, "Password update rejected, current password mismatch", slog.String("user_id", userID))
		return apperrors.ErrIncorrectPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return fmt.Errorf("failed to hash password: %w", err)
	}
	users[i].PasswordHash = hash
	if err := s.persistUser(ctx, users, users[i]); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.LogInfo(ctx, "User password updated", slog.String("user_id", userID))
	return nil
}

// persistUser saves the directory and refreshes the session if it belongs to user.
func (s *AuthService) persistUser(ctx context.Context, users []domain.User, user domain.User) error {
	if err := s.userRepo.SaveUsers(ctx, users); err != nil {
		s.LogError(ctx, err, "Failed to save user directory", slog.String("user_id", user.ID))
		return err
	}
	if current, ok := s.sessionRepo.CurrentUser(ctx); ok && current.ID == user.ID {
		if err := s.sessionRepo.SetCurrentUser(ctx, user); err != nil {
			s.LogError(ctx, err, "Failed to refresh session", slog.String("user_id", user.ID))
			return err
		}
	}
	return nil
}

func findUserByEmail(users []domain.User, email string) (domain.User, bool) {
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return domain.User{}, false
}

func indexOfUser(users []domain.User, userID string) int {
	for i, u := range users {
		if u.ID == userID {
			return i
		}
	}
	return -1
}
