package rating

import (
	"RecipeHub-Backend/domain"
	"RecipeHub-Backend/entities"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
		&entities.Category{},
		&entities.Recipe{},
		&entities.RecipeRating{},
	))
	return db
}

func seedUserAndRecipe(t *testing.T, db *gorm.DB) (entities.User, entities.Recipe) {
	t.Helper()

	user := entities.User{
		Name:         "Alice",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, db.Create(&user).Error)

	recipe := entities.Recipe{
		UserID: user.ID,
		Title:  "Soto Ayam",
	}
	require.NoError(t, db.Create(&recipe).Error)

	return user, recipe
}

func TestSaveRating_UpsertsSingleRow(t *testing.T) {
	db := newTestDB(t)
	service := NewRatingService(NewRatingRepository(db))
	user, recipe := seedUserAndRecipe(t, db)
	ctx := context.Background()

	req := domain.SaveRatingRequest{Rating: 3, Review: "Decent"}
	require.NoError(t, service.SaveRating(ctx, req, user.ID.String(), recipe.ID.String()))

	req = domain.SaveRatingRequest{Rating: 5, Review: "Improved a lot"}
	require.NoError(t, service.SaveRating(ctx, req, user.ID.String(), recipe.ID.String()))

	var rows []entities.RecipeRating
	require.NoError(t, db.Where("recipe_id = ?", recipe.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Rating)
	assert.Equal(t, "Improved a lot", rows[0].Review)
}

func TestGetRecipeRatings_EmptyRecipe(t *testing.T) {
	db := newTestDB(t)
	service := NewRatingService(NewRatingRepository(db))
	_, recipe := seedUserAndRecipe(t, db)

	result, err := service.GetRecipeRatings(context.Background(), recipe.ID.String())
	require.NoError(t, err)
	assert.Empty(t, result.Ratings)
	assert.Equal(t, float64(0), result.Average)
	assert.Equal(t, int64(0), result.Count)
}

func TestGetRecipeRatings_Average(t *testing.T) {
	db := newTestDB(t)
	service := NewRatingService(NewRatingRepository(db))
	user, recipe := seedUserAndRecipe(t, db)
	ctx := context.Background()

	other := entities.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(&other).Error)

	require.NoError(t, service.SaveRating(ctx, domain.SaveRatingRequest{Rating: 4}, user.ID.String(), recipe.ID.String()))
	require.NoError(t, service.SaveRating(ctx, domain.SaveRatingRequest{Rating: 5, Review: "Family favorite"}, other.ID.String(), recipe.ID.String()))

	result, err := service.GetRecipeRatings(ctx, recipe.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Count)
	assert.InDelta(t, 4.5, result.Average, 0.001)
	require.Len(t, result.Ratings, 2)
}

func TestDeleteRating(t *testing.T) {
	db := newTestDB(t)
	service := NewRatingService(NewRatingRepository(db))
	user, recipe := seedUserAndRecipe(t, db)
	ctx := context.Background()

	require.NoError(t, service.SaveRating(ctx, domain.SaveRatingRequest{Rating: 2}, user.ID.String(), recipe.ID.String()))
	require.NoError(t, service.DeleteRating(ctx, user.ID.String(), recipe.ID.String()))

	result, err := service.GetRecipeRatings(ctx, recipe.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Count)

	err = service.DeleteRating(ctx, user.ID.String(), recipe.ID.String())
	assert.ErrorIs(t, err, domain.ErrRatingNotFound)
}
