package user

import (
	"RecipeHub-Backend/domain"
	"RecipeHub-Backend/entities"
	"RecipeHub-Backend/pkg/jwt"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.RefreshToken{},
		&entities.PasswordResetToken{},
	))
	return db
}

func newTestService(t *testing.T) (UserService, UserRepository, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	repository := NewUserRepository(db)
	service := NewUserService(repository, jwt.NewJWTService(), nil)
	return service, repository, db
}

func register(t *testing.T, service UserService, email string) domain.AuthResponse {
	t.Helper()

	auth, err := service.Register(context.Background(), domain.RegisterRequest{
		Name:     "Alice",
		Email:    email,
		Password: "supersecret",
	})
	require.NoError(t, err)
	return auth
}

func TestRegisterAndLogin(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	auth := register(t, service, "alice@example.com")
	assert.NotEmpty(t, auth.Token)
	assert.NotEmpty(t, auth.RefreshToken)
	assert.Equal(t, "alice@example.com", auth.User.Email)

	login, err := service.Login(ctx, domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, auth.User.ID, login.User.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service, _, _ := newTestService(t)

	register(t, service, "alice@example.com")

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Name:     "Impostor",
		Email:    "alice@example.com",
		Password: "anotherpass",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_BadCredentials(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	register(t, service, "alice@example.com")

	_, err := service.Login(ctx, domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrongpassword",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Login(ctx, domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "supersecret",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRefreshToken_RotatesOnlyConsumedToken(t *testing.T) {
	service, _, db := newTestService(t)
	ctx := context.Background()

	auth := register(t, service, "alice@example.com")

	// Second session on another device
	login, err := service.Login(ctx, domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	refreshed, err := service.RefreshToken(ctx, domain.RefreshTokenRequest{RefreshToken: auth.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Token)
	assert.NotEqual(t, auth.RefreshToken, refreshed.RefreshToken)

	// The consumed token is gone
	_, err = service.RefreshToken(ctx, domain.RefreshTokenRequest{RefreshToken: auth.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredToken)

	// The other session still works
	_, err = service.RefreshToken(ctx, domain.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)

	var rows int64
	require.NoError(t, db.Model(&entities.RefreshToken{}).Count(&rows).Error)
	assert.Equal(t, int64(2), rows)
}

func TestRefreshToken_Expired(t *testing.T) {
	service, repository, _ := newTestService(t)
	ctx := context.Background()

	auth := register(t, service, "alice@example.com")

	expired := entities.RefreshToken{
		UserID:    uuid.MustParse(auth.User.ID),
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repository.CreateRefreshToken(ctx, &expired))

	_, err := service.RefreshToken(ctx, domain.RefreshTokenRequest{RefreshToken: expired.Token})
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredToken)
}

func TestLogout_RevokesAllSessions(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	auth := register(t, service, "alice@example.com")
	login, err := service.Login(ctx, domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, auth.User.ID))

	_, err = service.RefreshToken(ctx, domain.RefreshTokenRequest{RefreshToken: auth.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredToken)
	_, err = service.RefreshToken(ctx, domain.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredToken)
}

func TestResetPassword_SingleUse(t *testing.T) {
	service, repository, _ := newTestService(t)
	ctx := context.Background()

	auth := register(t, service, "alice@example.com")

	token := entities.PasswordResetToken{
		UserID:    uuid.MustParse(auth.User.ID),
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repository.CreatePasswordResetToken(ctx, &token))

	require.NoError(t, service.ResetPassword(ctx, domain.ResetPasswordRequest{
		Token:       token.Token,
		NewPassword: "freshpassword",
	}))

	// Old password rejected, new one accepted
	_, err := service.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = service.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "freshpassword"})
	require.NoError(t, err)

	// The token cannot be spent twice
	err = service.ResetPassword(ctx, domain.ResetPasswordRequest{
		Token:       token.Token,
		NewPassword: "yetanotherpass",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredToken)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	service, repository, _ := newTestService(t)
	ctx := context.Background()

	auth := register(t, service, "alice@example.com")

	token := entities.PasswordResetToken{
		UserID:    uuid.MustParse(auth.User.ID),
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, repository.CreatePasswordResetToken(ctx, &token))

	err := service.ResetPassword(ctx, domain.ResetPasswordRequest{
		Token:       token.Token,
		NewPassword: "freshpassword",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredToken)
}

func TestResetPassword_UnknownToken(t *testing.T) {
	service, _, _ := newTestService(t)

	err := service.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Token:       uuid.NewString(),
		NewPassword: "freshpassword",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOrExpiredToken)
}

func TestUpdateUser(t *testing.T) {
	service, _, db := newTestService(t)
	ctx := context.Background()

	auth := register(t, service, "alice@example.com")

	updated, err := service.UpdateUser(ctx, domain.UpdateUserRequest{Name: "Alicia"}, auth.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)

	// Password change requires the current password
	_, err = service.UpdateUser(ctx, domain.UpdateUserRequest{
		CurrentPassword: "wrongpassword",
		NewPassword:     "newpassword1",
	}, auth.User.ID)
	assert.ErrorIs(t, err, domain.ErrWrongCurrentPassword)

	_, err = service.UpdateUser(ctx, domain.UpdateUserRequest{
		CurrentPassword: "supersecret",
		NewPassword:     "newpassword1",
	}, auth.User.ID)
	require.NoError(t, err)

	var stored entities.User
	require.NoError(t, db.Where("id = ?", auth.User.ID).First(&stored).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpassword1")))
}

func TestMe(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	auth := register(t, service, "alice@example.com")

	profile, err := service.Me(ctx, auth.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.Email)

	_, err = service.Me(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
