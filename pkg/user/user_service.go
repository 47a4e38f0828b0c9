package user

import (
	"RecipeHub-Backend/domain"
	"RecipeHub-Backend/entities"
	"RecipeHub-Backend/internal/utils"
	"RecipeHub-Backend/internal/utils/mailing"
	"RecipeHub-Backend/internal/utils/storage"
	"RecipeHub-Backend/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		RefreshToken(ctx context.Context, req domain.RefreshTokenRequest) (domain.AuthResponse, error)
		Logout(ctx context.Context, userID string) error
		RequestPasswordReset(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (domain.UserResponse, error)
		UploadAvatar(ctx context.Context, req domain.UploadAvatarRequest, userID string) (string, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		s3             storage.AwsS3
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, s3 storage.AwsS3) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		s3:             s3,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	exists, err := s.userRepository.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	if exists {
		return domain.AuthResponse{}, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	user := entities.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepository.CreateUser(ctx, &user); err != nil {
		return domain.AuthResponse{}, err
	}

	return s.issueTokens(ctx, &user)
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AuthResponse{}, domain.ErrInvalidCredentials
		}
		return domain.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}

	// Prior refresh tokens stay valid so other devices keep their sessions
	return s.issueTokens(ctx, user)
}

func (s *userService) RefreshToken(ctx context.Context, req domain.RefreshTokenRequest) (domain.AuthResponse, error) {
	stored, err := s.userRepository.GetRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AuthResponse{}, domain.ErrInvalidOrExpiredToken
		}
		return domain.AuthResponse{}, err
	}
	if time.Now().After(stored.ExpiresAt) {
		return domain.AuthResponse{}, domain.ErrInvalidOrExpiredToken
	}

	user, err := s.userRepository.GetUserByID(ctx, stored.UserID.String())
	if err != nil {
		return domain.AuthResponse{}, err
	}

	replacement := entities.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(domain.RefreshTokenDuration),
	}
	if err := s.userRepository.RotateRefreshToken(ctx, req.RefreshToken, &replacement); err != nil {
		return domain.AuthResponse{}, err
	}

	return domain.AuthResponse{
		User:         toUserResponse(user),
		Token:        s.jwtService.GenerateTokenUser(user.ID.String()),
		RefreshToken: replacement.Token,
	}, nil
}

func (s *userService) Logout(ctx context.Context, userID string) error {
	return s.userRepository.DeleteUserRefreshTokens(ctx, userID)
}

func (s *userService) RequestPasswordReset(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Do not reveal whether the email is registered
			return nil
		}
		return err
	}

	token := entities.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(domain.PasswordResetDuration),
	}
	if err := s.userRepository.CreatePasswordResetToken(ctx, &token); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", utils.GetConfig("APP_URL"), token.Token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Click <a href=\"%s\">here</a> to reset your password. The link expires in one hour.</p>",
		user.Name, resetLink,
	)
	return mailing.SendMail(user.Email, domain.PasswordResetEmailSubject, body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	token, err := s.userRepository.GetPasswordResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInvalidOrExpiredToken
		}
		return err
	}
	if token.Used || time.Now().After(token.ExpiresAt) {
		return domain.ErrInvalidOrExpiredToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepository.ConsumePasswordResetToken(ctx, token, string(hash))
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			return domain.UserResponse{}, domain.ErrWrongCurrentPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return domain.UserResponse{}, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UploadAvatar(ctx context.Context, req domain.UploadAvatarRequest, userID string) (string, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}

	var objectKey string
	fileName := fmt.Sprintf("%s-%d", user.ID, time.Now().Unix())
	if user.AvatarURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(user.AvatarURL)
		objectKey, err = s.s3.UpdateFile(existingKey, req.Avatar, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(fileName, req.Avatar, "avatars", storage.AllowImage...)
	}
	if err != nil {
		return "", err
	}

	user.AvatarURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return "", err
	}
	return user.AvatarURL, nil
}

func (s *userService) issueTokens(ctx context.Context, user *entities.User) (domain.AuthResponse, error) {
	refreshToken := entities.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(domain.RefreshTokenDuration),
	}
	if err := s.userRepository.CreateRefreshToken(ctx, &refreshToken); err != nil {
		return domain.AuthResponse{}, err
	}

	return domain.AuthResponse{
		User:         toUserResponse(user),
		Token:        s.jwtService.GenerateTokenUser(user.ID.String()),
		RefreshToken: refreshToken.Token,
	}, nil
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
	}
}
