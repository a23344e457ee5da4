package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/finance_dashboard/internal/apperrors"
	"github.com/SscSPs/finance_dashboard/internal/core/domain"
	"github.com/SscSPs/finance_dashboard/internal/core/services"
	"github.com/SscSPs/finance_dashboard/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) ListUsers(ctx context.Context) []domain.User {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return []domain.User{}
	}
	return args.Get(0).([]domain.User)
}

func (m *MockUserRepository) SaveUsers(ctx context.Context, users []domain.User) error {
	args := m.Called(ctx, users)
	return args.Error(0)
}

// MockSessionRepository is a mock type for the SessionRepository interface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) CurrentUser(ctx context.Context) (*domain.User, bool) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.User), args.Bool(1)
}

func (m *MockSessionRepository) SetCurrentUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockSessionRepository) ClearCurrentUser(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AuthServiceTestSuite struct {
	suite.Suite
	users    *MockUserRepository
	sessions *MockSessionRepository
	hasher   utils.PasswordHasher
	service  *services.AuthService
	ctx      context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.users = new(MockUserRepository)
	suite.sessions = new(MockSessionRepository)
	suite.hasher = utils.NewPasswordHasher(bcrypt.MinCost)
	suite.ctx = context.Background()
	suite.service = services.NewAuthService(suite.users, suite.sessions,
		services.WithPasswordHasher(suite.hasher),
		services.WithUserIDGenerator(func() string { return "user-new" }),
	)
}

func (suite *AuthServiceTestSuite) existingUser(id, email, password string) domain.User {
	hash, err := suite.hasher.Hash(password)
	suite.Require().NoError(err)
	return domain.User{ID: id, Email: email, Name: "Existing", PasswordHash: hash}
}

// --- Test Cases ---

func (suite *AuthServiceTestSuite) TestRegister_Success() {
	suite.users.On("ListUsers", suite.ctx).Return([]domain.User{}).Once()
	suite.users.On("SaveUsers", suite.ctx, mock.MatchedBy(func(users []domain.User) bool {
		return len(users) == 1 && users[0].Email == "ada@example.com" && users[0].PasswordHash != "secret"
	})).Return(nil).Once()
	suite.sessions.On("SetCurrentUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.ID == "user-new"
	})).Return(nil).Once()

	user, err := suite.service.Register(suite.ctx, "ada@example.com", "secret", "Ada")

	suite.Require().NoError(err)
	suite.Equal("user-new", user.ID)
	suite.Equal("Ada", user.Name)
	suite.True(suite.hasher.Matches("secret", user.PasswordHash))
	suite.users.AssertExpectations(suite.T())
	suite.sessions.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	existing := suite.existingUser("u1", "ada@example.com", "secret")
	suite.users.On("ListUsers", suite.ctx).Return([]domain.User{existing}).Once()

	user, err := suite.service.Register(suite.ctx, "ada@example.com", "other", "Ada Again")

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicateEmail)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.users.AssertNotCalled(suite.T(), "SaveUsers", mock.Anything, mock.Anything)
	suite.sessions.AssertNotCalled(suite.T(), "SetCurrentUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestRegister_StorageUnavailable() {
	suite.users.On("ListUsers", suite.ctx).Return([]domain.User{}).Once()
	suite.users.On("SaveUsers", suite.ctx, mock.Anything).Return(apperrors.ErrStorageUnavailable).Once()

	_, err := suite.service.Register(suite.ctx, "ada@example.com", "secret", "Ada")

	suite.ErrorIs(err, apperrors.ErrStorageUnavailable)
	suite.sessions.AssertNotCalled(suite.T(), "SetCurrentUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	existing := suite.existingUser("u1", "ada@example.com", "secret")
	suite.users.On("ListUsers", suite.ctx).Return([]domain.User{existing}).Once()
	suite.sessions.On("SetCurrentUser", suite.ctx, existing).Return(nil).Once()

	user, err := suite.service.Login(suite.ctx, "ada@example.com", "secret")

	suite.Require().NoError(err)
	suite.Equal("u1", user.ID)
	suite.sessions.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	existing := suite.existingUser("u1", "ada@example.com", "secret")
	suite.users.On("ListUsers", suite.ctx).Return([]domain.User{existing}).Once()

	user, err := suite.service.Login(suite.ctx, "ada@example.com", "nope")

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
	suite.sessions.AssertNotCalled(suite.T(), "SetCurrentUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	suite.users.On("ListUsers", suite.ctx).Return([]domain.User{}).Once()

	_, err := suite.service.Login(suite.ctx, "ghost@example.com", "secret")

	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogout_ClearsSessionOnly() {
	suite.sessions.On("ClearCurrentUser", suite.ctx).Return(nil).Once()

	suite.NoError(suite.service.Logout(suite.ctx))
	suite.users.AssertNotCalled(suite.T(), "SaveUsers", mock.Anything, mock.Anything)
	suite.sessions.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestUpdateProfile_RefreshesActiveSession() {
	existing := suite.existingUser("u1", "ada@example.com", "secret")
	suite.users.On("ListUsers", suite.ctx).Return([]domain.User{existing}).Once()
	suite.users.On("SaveUsers", suite.ctx, mock.MatchedBy(func(users []domain.User) bool {
		return users[0].Name == "Ada L." && users[0].Email == "ada@lovelace.dev"
	})).Return(nil).Once()
	suite.sessions.On("CurrentUser", suite.ctx).Return(&existing, true).Once()
	suite.sessions.On("SetCurrentUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.ID == "u1" && u.Email == "ada@lovelace.dev"
	})).Return(nil).Once()

	user, err := suite.service.UpdateProfile(suite.ctx, "u1", "Ada L.", "ada@lovelace.dev")

	suite.Require().NoError(err)
	suite.Equal("Ada L.", user.Name)
	suite.users.AssertExpectations(suite.T())
	suite.sessions.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestUpdateProfile_OtherSessionUntouched() {
	existing := suite.existingUser("u1", "ada@example.com", "secret")
	other := domain.User{ID: "u2", Email: "bob@example.com"}
	suite.users.On("ListUsers", suite.ctx).Return([]domain.User{existing, other}).Once()
	suite.users.On("SaveUsers", suite.ctx, mock.Anything).Return(nil).Once()
	suite.sessions.On("CurrentUser", suite.ctx).Return(&other, true).Once()

	_, err := suite.service.UpdateProfile(suite.ctx, "u1", "Ada", "ada@example.com")

	suite.Require().NoError(err)
	suite.sessions.AssertNotCalled(suite.T(), "SetCurrentUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestUpdateProfile_UserNotFound() {
	suite.users.On("ListUsers", suite.ctx).Return([]domain.User{}).Once()

	_, err := suite.service.UpdateProfile(suite.ctx, "missing", "Ada", "ada@example.com")

	suite.ErrorIs(err, apperrors.ErrUserNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AuthServiceTestSuite) TestUpdatePassword_WrongCurrentPassword() {
	existing := suite.existingUser("u1", "ada@example.com", "secret")
	suite.users.On("ListUsers", suite.ctx).Return([]domain.User{existing}).Once()

	err := suite.service.UpdatePassword(suite.ctx, "u1", "guess", "new-secret")

	suite.ErrorIs(err, apperrors.ErrIncorrectPassword)
	suite.users.AssertNotCalled(suite.T(), "SaveUsers", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestUpdatePassword_Success() {
	existing := suite.existingUser("u1", "ada@example.com", "secret")
	var saved []domain.User
	suite.users.On("ListUsers", suite.ctx).Return([]domain.User{existing}).Once()
	suite.users.On("SaveUsers", suite.ctx, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]domain.User)
	}).Return(nil).Once()
	suite.sessions.On("CurrentUser", suite.ctx).Return(nil, false).Once()

	err := suite.service.UpdatePassword(suite.ctx, "u1", "secret", "new-secret")

	suite.Require().NoError(err)
	suite.Require().Len(saved, 1)
	suite.True(suite.hasher.Matches("new-secret", saved[0].PasswordHash))
	suite.False(suite.hasher.Matches("secret", saved[0].PasswordHash))
}

func (suite *AuthServiceTestSuite) TestUpdatePassword_UserNotFound() {
	suite.users.On("ListUsers", suite.ctx).Return([]domain.User{}).Once()

	err := suite.service.UpdatePassword(suite.ctx, "missing", "secret", "new")

	suite.ErrorIs(err, apperrors.ErrUserNotFound)
}

func (suite *AuthServiceTestSuite) TestCurrentSession() {
	existing := suite.existingUser("u1", "ada@example.com", "secret")
	suite.sessions.On("CurrentUser", suite.ctx).Return(&existing, true).Once()
	suite.sessions.On("CurrentUser", suite.ctx).Return(nil, false).Once()

	session, ok := suite.service.CurrentSession(suite.ctx)
	suite.Require().True(ok)
	suite.Equal("u1", session.User.ID)

	_, ok = suite.service.CurrentSession(suite.ctx)
	suite.False(ok)
}

// TestAuthServiceTestSuite runs the entire test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
