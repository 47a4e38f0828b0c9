package rating

import (
	"RecipeHub-Backend/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RatingRepository interface {
		CreateOrUpdate(ctx context.Context, userID, recipeID string, rating int, review string) error
		GetRecipeRatings(ctx context.Context, recipeID string) ([]*entities.RecipeRating, error)
		GetAverageRating(ctx context.Context, recipeID string) (float64, int64, error)
		DeleteRating(ctx context.Context, userID, recipeID string) (bool, error)
	}

	ratingRepository struct {
		db *gorm.DB
	}
)

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// CreateOrUpdate upserts on the (user, recipe) pair. A second submission by
// the same user overwrites rating and review instead of adding a row.
func (r *ratingRepository) CreateOrUpdate(ctx context.Context, userID, recipeID string, rating int, review string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return err
	}

	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return err
	}

	var existing entities.RecipeRating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userUUID, recipeUUID).
		First(&existing).Error; err == nil {
		existing.Rating = rating
		existing.Review = review
		return r.db.WithContext(ctx).Save(&existing).Error
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row := entities.RecipeRating{
		ID:       uuid.New(),
		UserID:   userUUID,
		RecipeID: recipeUUID,
		Rating:   rating,
		Review:   review,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *ratingRepository) GetRecipeRatings(ctx context.Context, recipeID string) ([]*entities.RecipeRating, error) {
	var ratings []*entities.RecipeRating
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Preload("User").
		Order("created_at desc").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) GetAverageRating(ctx context.Context, recipeID string) (float64, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeRating{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error; err != nil {
		return 0, 0, err
	}

	// COALESCE keeps the average at 0 instead of NULL when there are no rows
	var average float64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeRating{}).
		Where("recipe_id = ?", recipeID).
		Select("COALESCE(AVG(rating), 0)").
		Row().Scan(&average); err != nil {
		return 0, 0, err
	}

	return average, count, nil
}

func (r *ratingRepository) DeleteRating(ctx context.Context, userID, recipeID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.RecipeRating{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
