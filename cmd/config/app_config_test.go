package config

import (
	"RecipeHub-Backend/entities"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	// Keep the log directory out of the package tree
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

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
		&entities.Category{},
		&entities.Recipe{},
		&entities.Ingredient{},
		&entities.PreparationStep{},
		&entities.Tag{},
		&entities.RecipeImage{},
		&entities.Favorite{},
		&entities.RecipeStatistic{},
		&entities.RecipeRating{},
	))

	app, err := NewApp(db)
	require.NoError(t, err)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var parsed apiResponse
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return res.StatusCode, parsed
}

func registerUser(t *testing.T, app *fiber.App, name, email string) (token string, userID string) {
	t.Helper()

	status, res := doJSON(t, app, fiber.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"name":     name,
		"email":    email,
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, status)

	var auth struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &auth))
	return auth.Token, auth.User.ID
}

func TestFavoriteFlow(t *testing.T) {
	app, _ := newTestApp(t)

	aliceToken, _ := registerUser(t, app, "Alice", "alice@example.com")

	status, res := doJSON(t, app, fiber.MethodPost, "/api/v1/recipes", aliceToken, fiber.Map{
		"title":       "Nasi Goreng",
		"description": "Fried rice",
	})
	require.Equal(t, http.StatusCreated, status)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &created))
	require.NotEmpty(t, created.ID)

	status, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/recipes/"+created.ID+"/favorite", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, res = doJSON(t, app, fiber.MethodGet, "/api/v1/recipes/"+created.ID+"/favorite", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	var favStatus struct {
		IsFavorite bool `json:"is_favorite"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &favStatus))
	assert.True(t, favStatus.IsFavorite)

	status, _ = doJSON(t, app, fiber.MethodDelete, "/api/v1/recipes/"+created.ID+"/favorite", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, res = doJSON(t, app, fiber.MethodGet, "/api/v1/recipes/"+created.ID+"/favorite", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(res.Data, &favStatus))
	assert.False(t, favStatus.IsFavorite)

	bobToken, _ := registerUser(t, app, "Bob", "bob@example.com")
	status, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/recipes/"+created.ID+"/favorite", bobToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, res = doJSON(t, app, fiber.MethodGet, "/api/v1/recipes/"+created.ID+"/statistics", "", nil)
	require.Equal(t, http.StatusOK, status)
	var stats struct {
		FavoriteCount int `json:"favorite_count"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &stats))
	assert.Equal(t, 1, stats.FavoriteCount)
}

func TestAuthRequiredForWrites(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := doJSON(t, app, fiber.MethodPost, "/api/v1/recipes", "", fiber.Map{
		"title": "Nasi Goreng",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/recipes", "garbage-token", fiber.Map{
		"title": "Nasi Goreng",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPingAndCategories(t *testing.T) {
	app, db := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/ping", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	require.NoError(t, db.Create(&entities.Category{Name: "Dessert"}).Error)

	status, parsed := doJSON(t, app, fiber.MethodGet, "/api/v1/categories", "", nil)
	require.Equal(t, http.StatusOK, status)

	var categories []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "Dessert", categories[0].Name)
}
