package favorite

import (
	"RecipeHub-Backend/domain"
	"RecipeHub-Backend/entities"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	FavoriteService interface {
		AddFavorite(ctx context.Context, userID, recipeID string) error
		RemoveFavorite(ctx context.Context, userID, recipeID string) error
		GetFavoriteStatus(ctx context.Context, userID, recipeID string) (domain.FavoriteStatusResponse, error)
		GetUserFavorites(ctx context.Context, page, limit int, userID string) ([]domain.Recipe, int64, error)
		GetStatistics(ctx context.Context, recipeID string) (domain.RecipeStatisticsResponse, error)
		SyncFavoriteCounts(ctx context.Context) error
	}

	favoriteService struct {
		favoriteRepository FavoriteRepository
	}
)

func NewFavoriteService(favoriteRepository FavoriteRepository) FavoriteService {
	return &favoriteService{favoriteRepository: favoriteRepository}
}

func (s *favoriteService) AddFavorite(ctx context.Context, userID, recipeID string) error {
	return s.favoriteRepository.AddFavorite(ctx, userID, recipeID)
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	return s.favoriteRepository.RemoveFavorite(ctx, userID, recipeID)
}

func (s *favoriteService) GetFavoriteStatus(ctx context.Context, userID, recipeID string) (domain.FavoriteStatusResponse, error) {
	isFavorite, err := s.favoriteRepository.IsFavorite(ctx, userID, recipeID)
	if err != nil {
		return domain.FavoriteStatusResponse{}, err
	}
	return domain.FavoriteStatusResponse{IsFavorite: isFavorite}, nil
}

func (s *favoriteService) GetUserFavorites(ctx context.Context, page, limit int, userID string) ([]domain.Recipe, int64, error) {
	recipes, count, err := s.favoriteRepository.GetUserFavorites(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		result = append(result, toDomainRecipe(r))
	}
	return result, count, nil
}

func (s *favoriteService) GetStatistics(ctx context.Context, recipeID string) (domain.RecipeStatisticsResponse, error) {
	stat, err := s.favoriteRepository.GetStatistics(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No statistic row yet means nobody favorited or viewed the recipe
			return domain.RecipeStatisticsResponse{RecipeID: recipeID}, nil
		}
		return domain.RecipeStatisticsResponse{}, err
	}

	return domain.RecipeStatisticsResponse{
		RecipeID:      stat.RecipeID.String(),
		FavoriteCount: stat.FavoriteCount,
		ViewCount:     stat.ViewCount,
	}, nil
}

func (s *favoriteService) SyncFavoriteCounts(ctx context.Context) error {
	return s.favoriteRepository.SyncFavoriteCounts(ctx)
}

func toDomainRecipe(r *entities.Recipe) domain.Recipe {
	recipe := domain.Recipe{
		ID:              r.ID.String(),
		UserID:          r.UserID.String(),
		Title:           r.Title,
		Description:     r.Description,
		PrepTimeMinutes: r.PrepTimeMinutes,
		Servings:        r.Servings,
		CreatedAt:       r.CreatedAt,
	}
	if r.Category != nil {
		recipe.CategoryName = r.Category.Name
	}
	if r.Statistic != nil {
		recipe.FavoriteCount = r.Statistic.FavoriteCount
	}
	for _, img := range r.Images {
		if img.IsPrimary {
			recipe.ImageURL = img.ImageURL
			break
		}
	}
	if recipe.ImageURL == "" && len(r.Images) > 0 {
		recipe.ImageURL = r.Images[0].ImageURL
	}
	return recipe
}
