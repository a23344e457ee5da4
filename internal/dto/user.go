package dto

import (
	"errors"
	"time"

	"github.com/SscSPs/finance_dashboard/internal/apperrors"
	"github.com/SscSPs/finance_dashboard/internal/core/domain"
)

// RegisterRequest defines the data needed to create a user.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest defines the credentials for a login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserProfileRequest defines the editable user fields.
type UpdateUserProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UpdatePasswordRequest defines a password change.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// UpdateProfileRequest is a partial update of the dashboard profile.
type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	Role         *string `json:"role"`
	Avatar       *string `json:"avatar" binding:"omitempty,url"`
	Subscription *string `json:"subscription"`
}

// ToPatch converts the request to a domain.ProfilePatch.
func (r UpdateProfileRequest) ToPatch() domain.ProfilePatch {
	return domain.ProfilePatch{Name: r.Name, Role: r.Role, Avatar: r.Avatar, Subscription: r.Subscription}
}

// UserResponse is a user without credentials.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	AuthResult
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// AuthOperation names an auth store operation for result messages.
type AuthOperation string

const (
	OpRegister       AuthOperation = "register"
	OpLogin          AuthOperation = "login"
	OpUpdateProfile  AuthOperation = "update_profile"
	OpUpdatePassword AuthOperation = "update_password"
)

// AuthResult is the {success, message} outcome of an auth operation.
type AuthResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

var authMessages = map[AuthOperation]struct{ ok, failed, unavailable string }{
	OpRegister:       {"Registration successful", "Registration failed", "Cannot register user on server"},
	OpLogin:          {"Login successful", "Login failed", "Cannot login on server"},
	OpUpdateProfile:  {"Profile updated successfully", "Profile update failed", "Cannot update profile on server"},
	OpUpdatePassword: {"Password updated successfully", "Password update failed", "Cannot update password on server"},
}

// ToAuthResult maps the error returned by an auth operation to its user-facing result.
func ToAuthResult(op AuthOperation, err error) AuthResult {
	msgs := authMessages[op]
	switch {
	case err == nil:
		return AuthResult{Success: true, Message: msgs.ok}
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		return AuthResult{Message: "Email already in use"}
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return AuthResult{Message: "Invalid email or password"}
	case errors.Is(err, apperrors.ErrUserNotFound):
		return AuthResult{Message: "User not found"}
	case errors.Is(err, apperrors.ErrIncorrectPassword):
		return AuthResult{Message: "Current password is incorrect"}
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		return AuthResult{Message: msgs.unavailable}
	default:
		return AuthResult{Message: msgs.failed}
	}
}
