package favorite

import (
	"RecipeHub-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FavoriteRepository interface {
		AddFavorite(ctx context.Context, userID, recipeID string) error
		RemoveFavorite(ctx context.Context, userID, recipeID string) error
		IsFavorite(ctx context.Context, userID, recipeID string) (bool, error)
		GetUserFavorites(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error)
		GetStatistics(ctx context.Context, recipeID string) (*entities.RecipeStatistic, error)
		SyncFavoriteCounts(ctx context.Context) error
	}

	favoriteRepository struct {
		db *gorm.DB
	}
)

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// AddFavorite inserts the (user, recipe) pair and bumps the denormalized
// counter in one transaction. A duplicate insert is a no-op so the counter
// moves by exactly one per distinct favoriter.
func (r *favoriteRepository) AddFavorite(ctx context.Context, userID, recipeID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return err
	}

	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Favorite
		if err := tx.
			Where("user_id = ? AND recipe_id = ?", userUUID, recipeUUID).
			First(&existing).Error; err == nil {
			// Already a favorite, counter already reflects it
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		fav := entities.Favorite{
			ID:        uuid.New(),
			UserID:    userUUID,
			RecipeID:  recipeUUID,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&fav).Error; err != nil {
			return err
		}

		res := tx.Model(&entities.RecipeStatistic{}).
			Where("recipe_id = ?", recipeUUID).
			UpdateColumn("favorite_count", gorm.Expr("favorite_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			stat := entities.RecipeStatistic{
				ID:            uuid.New(),
				RecipeID:      recipeUUID,
				FavoriteCount: 1,
			}
			if err := tx.Create(&stat).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// RemoveFavorite deletes the pair and decrements the counter only when a row
// was actually removed. The favorite_count > 0 guard keeps the counter from
// ever going negative.
func (r *favoriteRepository) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("user_id = ? AND recipe_id = ?", userID, recipeID).
			Delete(&entities.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		return tx.Model(&entities.RecipeStatistic{}).
			Where("recipe_id = ? AND favorite_count > 0", recipeID).
			UpdateColumn("favorite_count", gorm.Expr("favorite_count - 1")).Error
	})
}

func (r *favoriteRepository) IsFavorite(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) GetUserFavorites(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Joins("JOIN favorites ON recipes.id = favorites.recipe_id").
		Where("favorites.user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN favorites ON recipes.id = favorites.recipe_id").
		Where("favorites.user_id = ?", userID).
		Preload("Category").
		Preload("Images").
		Preload("Statistic").
		Offset(offset).
		Limit(limit).
		Order("favorites.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *favoriteRepository) GetStatistics(ctx context.Context, recipeID string) (*entities.RecipeStatistic, error) {
	var stat entities.RecipeStatistic
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		First(&stat).Error; err != nil {
		return nil, err
	}
	return &stat, nil
}

// SyncFavoriteCounts recomputes favorite_count from the favorites table for
// every recipe. It is the repair operation for drift caused by direct counter
// mutations that bypassed the ledger, and is safe to run repeatedly.
func (r *favoriteRepository) SyncFavoriteCounts(ctx context.Context) error {
	type favoriteCount struct {
		RecipeID uuid.UUID
		Total    int
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counts []favoriteCount
		if err := tx.Model(&entities.Favorite{}).
			Select("recipe_id, COUNT(*) as total").
			Group("recipe_id").
			Scan(&counts).Error; err != nil {
			return err
		}

		for _, c := range counts {
			res := tx.Model(&entities.RecipeStatistic{}).
				Where("recipe_id = ?", c.RecipeID).
				UpdateColumn("favorite_count", c.Total)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				stat := entities.RecipeStatistic{
					ID:            uuid.New(),
					RecipeID:      c.RecipeID,
					FavoriteCount: c.Total,
				}
				if err := tx.Create(&stat).Error; err != nil {
					return err
				}
			}
		}

		// Zero the counter for recipes that no longer have any favorite rows
		return tx.Model(&entities.RecipeStatistic{}).
			Where("favorite_count <> 0 AND recipe_id NOT IN (?)",
				tx.Model(&entities.Favorite{}).Distinct("recipe_id")).
			UpdateColumn("favorite_count", 0).Error
	})
}
