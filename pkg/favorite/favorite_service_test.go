package favorite

import (
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
		&entities.Ingredient{},
		&entities.PreparationStep{},
		&entities.Tag{},
		&entities.RecipeImage{},
		&entities.Favorite{},
		&entities.RecipeStatistic{},
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
		Title:  "Nasi Goreng",
	}
	require.NoError(t, db.Create(&recipe).Error)

	return user, recipe
}

func favoriteCount(t *testing.T, db *gorm.DB, recipeID uuid.UUID) int {
	t.Helper()

	var stat entities.RecipeStatistic
	err := db.Where("recipe_id = ?", recipeID).First(&stat).Error
	if err == gorm.ErrRecordNotFound {
		return 0
	}
	require.NoError(t, err)
	return stat.FavoriteCount
}

func TestAddFavorite_Idempotent(t *testing.T) {
	db := newTestDB(t)
	service := NewFavoriteService(NewFavoriteRepository(db))
	user, recipe := seedUserAndRecipe(t, db)
	ctx := context.Background()

	require.NoError(t, service.AddFavorite(ctx, user.ID.String(), recipe.ID.String()))
	require.NoError(t, service.AddFavorite(ctx, user.ID.String(), recipe.ID.String()))

	assert.Equal(t, 1, favoriteCount(t, db, recipe.ID))

	var rows int64
	require.NoError(t, db.Model(&entities.Favorite{}).
		Where("recipe_id = ?", recipe.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	status, err := service.GetFavoriteStatus(ctx, user.ID.String(), recipe.ID.String())
	require.NoError(t, err)
	assert.True(t, status.IsFavorite)
}

func TestRemoveFavorite_NeverNegative(t *testing.T) {
	db := newTestDB(t)
	service := NewFavoriteService(NewFavoriteRepository(db))
	user, recipe := seedUserAndRecipe(t, db)
	ctx := context.Background()

	// Removing a favorite that was never added must not touch the counter
	require.NoError(t, service.RemoveFavorite(ctx, user.ID.String(), recipe.ID.String()))
	assert.Equal(t, 0, favoriteCount(t, db, recipe.ID))

	require.NoError(t, service.AddFavorite(ctx, user.ID.String(), recipe.ID.String()))
	require.NoError(t, service.RemoveFavorite(ctx, user.ID.String(), recipe.ID.String()))
	assert.Equal(t, 0, favoriteCount(t, db, recipe.ID))

	require.NoError(t, service.RemoveFavorite(ctx, user.ID.String(), recipe.ID.String()))
	assert.Equal(t, 0, favoriteCount(t, db, recipe.ID))

	status, err := service.GetFavoriteStatus(ctx, user.ID.String(), recipe.ID.String())
	require.NoError(t, err)
	assert.False(t, status.IsFavorite)
}

func TestTwoUsersFavoriteSameRecipe(t *testing.T) {
	db := newTestDB(t)
	service := NewFavoriteService(NewFavoriteRepository(db))
	user, recipe := seedUserAndRecipe(t, db)
	ctx := context.Background()

	other := entities.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(&other).Error)

	require.NoError(t, service.AddFavorite(ctx, user.ID.String(), recipe.ID.String()))
	require.NoError(t, service.AddFavorite(ctx, other.ID.String(), recipe.ID.String()))

	stats, err := service.GetStatistics(ctx, recipe.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FavoriteCount)
}

func TestSyncFavoriteCounts_RepairsDrift(t *testing.T) {
	db := newTestDB(t)
	service := NewFavoriteService(NewFavoriteRepository(db))
	user, recipe := seedUserAndRecipe(t, db)
	ctx := context.Background()

	other := entities.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(&other).Error)

	require.NoError(t, service.AddFavorite(ctx, user.ID.String(), recipe.ID.String()))
	require.NoError(t, service.AddFavorite(ctx, other.ID.String(), recipe.ID.String()))

	// Simulate a direct counter mutation that bypassed the ledger
	require.NoError(t, db.Model(&entities.RecipeStatistic{}).
		Where("recipe_id = ?", recipe.ID).
		UpdateColumn("favorite_count", 99).Error)

	require.NoError(t, service.SyncFavoriteCounts(ctx))
	assert.Equal(t, 2, favoriteCount(t, db, recipe.ID))

	// Repeated runs are a no-op
	require.NoError(t, service.SyncFavoriteCounts(ctx))
	assert.Equal(t, 2, favoriteCount(t, db, recipe.ID))
}

func TestSyncFavoriteCounts_ZeroesOrphanedCounters(t *testing.T) {
	db := newTestDB(t)
	service := NewFavoriteService(NewFavoriteRepository(db))
	_, recipe := seedUserAndRecipe(t, db)
	ctx := context.Background()

	// Counter claims favorites that do not exist
	stat := entities.RecipeStatistic{RecipeID: recipe.ID, FavoriteCount: 7}
	require.NoError(t, db.Create(&stat).Error)

	require.NoError(t, service.SyncFavoriteCounts(ctx))
	assert.Equal(t, 0, favoriteCount(t, db, recipe.ID))
}

func TestSyncFavoriteCounts_CreatesMissingStatisticRows(t *testing.T) {
	db := newTestDB(t)
	service := NewFavoriteService(NewFavoriteRepository(db))
	user, recipe := seedUserAndRecipe(t, db)
	ctx := context.Background()

	// Favorite row written without going through the ledger
	fav := entities.Favorite{UserID: user.ID, RecipeID: recipe.ID}
	require.NoError(t, db.Create(&fav).Error)

	require.NoError(t, service.SyncFavoriteCounts(ctx))
	assert.Equal(t, 1, favoriteCount(t, db, recipe.ID))
}

func TestGetStatistics_NoRowMeansZeroes(t *testing.T) {
	db := newTestDB(t)
	service := NewFavoriteService(NewFavoriteRepository(db))
	_, recipe := seedUserAndRecipe(t, db)

	stats, err := service.GetStatistics(context.Background(), recipe.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.FavoriteCount)
	assert.Equal(t, 0, stats.ViewCount)
}

func TestGetUserFavorites(t *testing.T) {
	db := newTestDB(t)
	service := NewFavoriteService(NewFavoriteRepository(db))
	user, recipe := seedUserAndRecipe(t, db)
	ctx := context.Background()

	second := entities.Recipe{UserID: user.ID, Title: "Rendang"}
	require.NoError(t, db.Create(&second).Error)

	require.NoError(t, service.AddFavorite(ctx, user.ID.String(), recipe.ID.String()))
	require.NoError(t, service.AddFavorite(ctx, user.ID.String(), second.ID.String()))

	recipes, count, err := service.GetUserFavorites(ctx, 1, 20, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.Len(t, recipes, 2)

	titles := []string{recipes[0].Title, recipes[1].Title}
	assert.Contains(t, titles, "Nasi Goreng")
	assert.Contains(t, titles, "Rendang")
}
