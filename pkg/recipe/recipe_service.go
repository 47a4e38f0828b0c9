package recipe

import (
	"RecipeHub-Backend/domain"
	"RecipeHub-Backend/entities"
	"RecipeHub-Backend/internal/utils/storage"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error)
		GetRecipeDetail(ctx context.Context, recipeID string) (domain.RecipeDetail, error)
		GetRecipes(ctx context.Context, query domain.GetRecipesQuery) ([]domain.Recipe, int64, error)
		UpdateRecipe(ctx context.Context, req domain.UpdateRecipeRequest, recipeID, userID string) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, recipeID, userID string) error
		SaveComponents(ctx context.Context, req domain.SaveComponentsRequest, recipeID, userID string) error
		ReorderSteps(ctx context.Context, req domain.ReorderStepsRequest, recipeID, userID string) ([]domain.RecipeStep, error)
		UploadRecipeImage(ctx context.Context, req domain.UploadRecipeImageRequest, recipeID, userID string) (string, error)
		GetCategories(ctx context.Context) ([]domain.Category, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetail{}, domain.ErrParseUUID
	}

	recipe := entities.Recipe{
		ID:              uuid.New(),
		UserID:          userUUID,
		Title:           req.Title,
		Description:     req.Description,
		PrepTimeMinutes: req.PrepTimeMinutes,
		Servings:        req.Servings,
		Equipment:       req.Equipment,
		AuthorNote:      req.AuthorNote,
	}

	if req.CategoryID != nil {
		category, err := s.recipeRepository.GetCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.RecipeDetail{}, domain.ErrCategoryNotFound
			}
			return domain.RecipeDetail{}, err
		}
		recipe.CategoryID = &category.ID
	}

	if err := s.recipeRepository.CreateRecipe(ctx, &recipe); err != nil {
		return domain.RecipeDetail{}, err
	}

	created, err := s.recipeRepository.GetRecipeByID(ctx, recipe.ID.String())
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	return toRecipeDetail(created), nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}

	// Best effort: a failed view bump should not break the read
	if err := s.recipeRepository.IncrementViewCount(ctx, recipeID); err != nil {
		log.Printf("failed to increment view count for recipe %s: %v", recipeID, err)
	}

	return toRecipeDetail(recipe), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, query domain.GetRecipesQuery) ([]domain.Recipe, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		result = append(result, toRecipeSummary(r))
	}
	return result, count, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, req domain.UpdateRecipeRequest, recipeID, userID string) (domain.RecipeDetail, error) {
	recipe, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	// Partial update: only provided fields change
	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.PrepTimeMinutes != nil {
		recipe.PrepTimeMinutes = *req.PrepTimeMinutes
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
	if req.Equipment != nil {
		recipe.Equipment = *req.Equipment
	}
	if req.AuthorNote != nil {
		recipe.AuthorNote = *req.AuthorNote
	}
	if req.CategoryID != nil {
		category, err := s.recipeRepository.GetCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.RecipeDetail{}, domain.ErrCategoryNotFound
			}
			return domain.RecipeDetail{}, err
		}
		recipe.CategoryID = &category.ID
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetail{}, err
	}

	updated, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	return toRecipeDetail(updated), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID, userID string) error {
	if _, err := s.ownedRecipe(ctx, recipeID, userID); err != nil {
		return err
	}
	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) SaveComponents(ctx context.Context, req domain.SaveComponentsRequest, recipeID, userID string) error {
	recipe, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	ingredients := make([]*entities.Ingredient, 0, len(req.Ingredients))
	for _, i := range req.Ingredients {
		ingredients = append(ingredients, &entities.Ingredient{
			ID:       uuid.New(),
			RecipeID: recipe.ID,
			Name:     i.Name,
			Quantity: i.Quantity,
			Unit:     i.Unit,
		})
	}

	steps := make([]*entities.PreparationStep, 0, len(req.Steps))
	for _, st := range req.Steps {
		steps = append(steps, &entities.PreparationStep{
			ID:          uuid.New(),
			RecipeID:    recipe.ID,
			StepNumber:  st.StepNumber,
			Instruction: st.Instruction,
		})
	}

	return s.recipeRepository.ReplaceComponents(ctx, recipeID, ingredients, steps, req.Tags)
}

func (s *recipeService) ReorderSteps(ctx context.Context, req domain.ReorderStepsRequest, recipeID, userID string) ([]domain.RecipeStep, error) {
	recipe, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if len(req.Steps) == 0 {
		return nil, domain.ErrEmptySteps
	}

	steps := make([]*entities.PreparationStep, 0, len(req.Steps))
	for _, st := range req.Steps {
		steps = append(steps, &entities.PreparationStep{
			ID:          uuid.New(),
			RecipeID:    recipe.ID,
			StepNumber:  st.StepNumber,
			Instruction: st.Instruction,
		})
	}

	if err := s.recipeRepository.ReorderSteps(ctx, recipeID, steps); err != nil {
		return nil, err
	}

	saved, err := s.recipeRepository.GetStepsByRecipeID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.RecipeStep, 0, len(saved))
	for _, st := range saved {
		result = append(result, domain.RecipeStep{
			StepNumber:  st.StepNumber,
			Instruction: st.Instruction,
		})
	}
	return result, nil
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, req domain.UploadRecipeImageRequest, recipeID, userID string) (string, error) {
	recipe, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("%s-%d", recipe.ID, time.Now().Unix())
	objectKey, err := s.s3.UploadFile(fileName, req.Image, "recipes", storage.AllowImage...)
	if err != nil {
		return "", err
	}

	imageURL := s.s3.GetPublicLinkKey(objectKey)
	image := entities.RecipeImage{
		ID:        uuid.New(),
		RecipeID:  recipe.ID,
		ImageURL:  imageURL,
		IsPrimary: req.IsPrimary,
	}
	if err := s.recipeRepository.AddRecipeImage(ctx, &image); err != nil {
		_ = s.s3.DeleteFile(objectKey)
		return "", err
	}

	return imageURL, nil
}

func (s *recipeService) GetCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.recipeRepository.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		result = append(result, domain.Category{
			ID:   c.ID.String(),
			Name: c.Name,
		})
	}
	return result, nil
}

func (s *recipeService) ownedRecipe(ctx context.Context, recipeID, userID string) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return recipe, nil
}

func toRecipeSummary(r *entities.Recipe) domain.Recipe {
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

func toRecipeDetail(r *entities.Recipe) domain.RecipeDetail {
	detail := domain.RecipeDetail{
		Recipe:     toRecipeSummary(r),
		Equipment:  r.Equipment,
		AuthorNote: r.AuthorNote,
	}

	detail.Ingredients = make([]domain.RecipeIngredient, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		detail.Ingredients = append(detail.Ingredients, domain.RecipeIngredient{
			Name:     i.Name,
			Quantity: i.Quantity,
			Unit:     i.Unit,
		})
	}

	detail.Steps = make([]domain.RecipeStep, 0, len(r.Steps))
	for _, st := range r.Steps {
		detail.Steps = append(detail.Steps, domain.RecipeStep{
			StepNumber:  st.StepNumber,
			Instruction: st.Instruction,
		})
	}

	detail.Tags = make([]string, 0, len(r.Tags))
	for _, t := range r.Tags {
		detail.Tags = append(detail.Tags, t.Name)
	}

	detail.Images = make([]string, 0, len(r.Images))
	for _, img := range r.Images {
		detail.Images = append(detail.Images, img.ImageURL)
	}

	if r.Statistic != nil {
		detail.ViewCount = r.Statistic.ViewCount
	}

	return detail
}
