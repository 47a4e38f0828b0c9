package user

import (
	"RecipeHub-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		UpdateUser(ctx context.Context, user *entities.User) error
		CheckEmailExists(ctx context.Context, email string) (bool, error)

		CreateRefreshToken(ctx context.Context, token *entities.RefreshToken) error
		GetRefreshToken(ctx context.Context, token string) (*entities.RefreshToken, error)
		RotateRefreshToken(ctx context.Context, consumed string, replacement *entities.RefreshToken) error
		DeleteUserRefreshTokens(ctx context.Context, userID string) error

		CreatePasswordResetToken(ctx context.Context, token *entities.PasswordResetToken) error
		GetPasswordResetToken(ctx context.Context, token string) (*entities.PasswordResetToken, error)
		ConsumePasswordResetToken(ctx context.Context, token *entities.PasswordResetToken, newPasswordHash string) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) CreateRefreshToken(ctx context.Context, token *entities.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *userRepository) GetRefreshToken(ctx context.Context, token string) (*entities.RefreshToken, error) {
	var refreshToken entities.RefreshToken
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&refreshToken).Error; err != nil {
		return nil, err
	}
	return &refreshToken, nil
}

// RotateRefreshToken deletes the consumed token and stores its replacement in
// one transaction. Other refresh tokens for the same user are left alone, so
// sessions on other devices stay valid.
func (r *userRepository) RotateRefreshToken(ctx context.Context, consumed string, replacement *entities.RefreshToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("token = ?", consumed).
			Delete(&entities.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Create(replacement).Error
	})
}

func (r *userRepository) DeleteUserRefreshTokens(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entities.RefreshToken{}).Error
}

func (r *userRepository) CreatePasswordResetToken(ctx context.Context, token *entities.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *userRepository) GetPasswordResetToken(ctx context.Context, token string) (*entities.PasswordResetToken, error) {
	var resetToken entities.PasswordResetToken
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&resetToken).Error; err != nil {
		return nil, err
	}
	return &resetToken, nil
}

// ConsumePasswordResetToken marks the token used and swaps the password hash
// in one transaction so a crash between the two writes cannot leave a spent
// token reusable.
func (r *userRepository) ConsumePasswordResetToken(ctx context.Context, token *entities.PasswordResetToken, newPasswordHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.PasswordResetToken{}).
			Where("id = ?", token.ID).
			Update("used", true).Error; err != nil {
			return err
		}
		return tx.Model(&entities.User{}).
			Where("id = ?", token.UserID).
			Update("password_hash", newPasswordHash).Error
	})
}
