package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessRegister             = "user registered successfully"
	MessageSuccessLogin                = "login successful"
	MessageSuccessRefreshToken         = "token refreshed successfully"
	MessageSuccessLogout               = "logged out successfully"
	MessageSuccessGetProfile           = "success get profile"
	MessageSuccessUpdateProfile        = "profile updated successfully"
	MessageSuccessUploadAvatar         = "avatar uploaded successfully"
	MessageSuccessRequestPasswordReset = "if the email exists, a reset link has been sent"
	MessageSuccessResetPassword        = "password reset successfully"

	MessageFailedRegister             = "failed to register user"
	MessageFailedLogin                = "failed to login"
	MessageFailedRefreshToken         = "failed to refresh token"
	MessageFailedLogout               = "failed to logout"
	MessageFailedGetProfile           = "failed to get profile"
	MessageFailedUpdateProfile        = "failed to update profile"
	MessageFailedUploadAvatar         = "failed to upload avatar"
	MessageFailedRequestPasswordReset = "failed to request password reset"
	MessageFailedResetPassword        = "failed to reset password"

	ErrEmailAlreadyExists      = errors.New("email already registered")
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInvalidOrExpiredToken   = errors.New("invalid or expired token")
	ErrWrongCurrentPassword    = errors.New("current password does not match")
	ErrAvatarUploadUnsupported = errors.New("unsupported avatar file type")
)

const (
	RefreshTokenDuration      = 30 * 24 * time.Hour
	PasswordResetDuration     = 1 * time.Hour
	PasswordResetEmailSubject = "Reset your password"
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	RefreshTokenRequest struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}

	UpdateUserRequest struct {
		Name            string `json:"name,omitempty"`
		CurrentPassword string `json:"current_password,omitempty"`
		NewPassword     string `json:"new_password,omitempty" validate:"omitempty,min=8"`
	}

	UploadAvatarRequest struct {
		Avatar *multipart.FileHeader `form:"avatar" validate:"required"`
	}

	UserResponse struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url,omitempty"`
	}

	AuthResponse struct {
		User         UserResponse `json:"user"`
		Token        string       `json:"token"`
		RefreshToken string       `json:"refresh_token"`
	}
)
