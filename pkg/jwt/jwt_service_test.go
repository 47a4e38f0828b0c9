package jwt

import (
	"RecipeHub-Backend/domain"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	service := NewJWTService()
	userID := uuid.NewString()

	token := service.GenerateTokenUser(userID)
	require.NotEmpty(t, token)

	parsed, err := service.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestGetUserIDByToken_Garbage(t *testing.T) {
	service := NewJWTService()

	_, err := service.GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
