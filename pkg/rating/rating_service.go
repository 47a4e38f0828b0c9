package rating

import (
	"RecipeHub-Backend/domain"
	"context"
)

type (
	RatingService interface {
		SaveRating(ctx context.Context, req domain.SaveRatingRequest, userID, recipeID string) error
		GetRecipeRatings(ctx context.Context, recipeID string) (domain.RecipeRatingsResponse, error)
		DeleteRating(ctx context.Context, userID, recipeID string) error
	}

	ratingService struct {
		ratingRepository RatingRepository
	}
)

func NewRatingService(ratingRepository RatingRepository) RatingService {
	return &ratingService{ratingRepository: ratingRepository}
}

func (s *ratingService) SaveRating(ctx context.Context, req domain.SaveRatingRequest, userID, recipeID string) error {
	return s.ratingRepository.CreateOrUpdate(ctx, userID, recipeID, req.Rating, req.Review)
}

func (s *ratingService) GetRecipeRatings(ctx context.Context, recipeID string) (domain.RecipeRatingsResponse, error) {
	ratings, err := s.ratingRepository.GetRecipeRatings(ctx, recipeID)
	if err != nil {
		return domain.RecipeRatingsResponse{}, err
	}

	average, count, err := s.ratingRepository.GetAverageRating(ctx, recipeID)
	if err != nil {
		return domain.RecipeRatingsResponse{}, err
	}

	result := make([]domain.Rating, 0, len(ratings))
	for _, r := range ratings {
		item := domain.Rating{
			UserID:    r.UserID.String(),
			Rating:    r.Rating,
			Review:    r.Review,
			CreatedAt: r.CreatedAt,
		}
		if r.User != nil {
			item.UserName = r.User.Name
		}
		result = append(result, item)
	}

	return domain.RecipeRatingsResponse{
		Ratings: result,
		Average: average,
		Count:   count,
	}, nil
}

func (s *ratingService) DeleteRating(ctx context.Context, userID, recipeID string) error {
	removed, err := s.ratingRepository.DeleteRating(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrRatingNotFound
	}
	return nil
}
