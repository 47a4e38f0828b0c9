package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetRecipes        = "success get recipes"
	MessageSuccessGetRecipeDetail   = "success get recipe detail"
	MessageSuccessCreateRecipe      = "recipe created successfully"
	MessageSuccessUpdateRecipe      = "recipe updated successfully"
	MessageSuccessDeleteRecipe      = "recipe deleted successfully"
	MessageSuccessSaveComponents    = "recipe components saved successfully"
	MessageSuccessReorderSteps      = "steps reordered successfully"
	MessageSuccessUploadRecipeImage = "recipe image uploaded successfully"
	MessageSuccessGetCategories     = "success get categories"

	MessageFailedGetRecipes        = "failed to get recipes"
	MessageFailedGetRecipeDetail   = "failed to get recipe detail"
	MessageFailedCreateRecipe      = "failed to create recipe"
	MessageFailedUpdateRecipe      = "failed to update recipe"
	MessageFailedDeleteRecipe      = "failed to delete recipe"
	MessageFailedSaveComponents    = "failed to save recipe components"
	MessageFailedReorderSteps      = "failed to reorder steps"
	MessageFailedUploadRecipeImage = "failed to upload recipe image"
	MessageFailedGetCategories     = "failed to get categories"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrCategoryNotFound         = errors.New("category not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrEmptySteps               = errors.New("steps must not be empty")
)

const (
	SortNewest  = "newest"
	SortPopular = "popular"
)

type (
	CreateRecipeRequest struct {
		Title           string  `json:"title" validate:"required"`
		Description     string  `json:"description"`
		PrepTimeMinutes int     `json:"prep_time_minutes" validate:"omitempty,min=0"`
		Servings        int     `json:"servings" validate:"omitempty,min=1"`
		Equipment       string  `json:"equipment,omitempty"`
		AuthorNote      string  `json:"author_note,omitempty"`
		CategoryID      *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
	}

	UpdateRecipeRequest struct {
		Title           *string `json:"title,omitempty"`
		Description     *string `json:"description,omitempty"`
		PrepTimeMinutes *int    `json:"prep_time_minutes,omitempty" validate:"omitempty,min=0"`
		Servings        *int    `json:"servings,omitempty" validate:"omitempty,min=1"`
		Equipment       *string `json:"equipment,omitempty"`
		AuthorNote      *string `json:"author_note,omitempty"`
		CategoryID      *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
	}

	IngredientRequest struct {
		Name     string  `json:"name" validate:"required"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}

	StepRequest struct {
		StepNumber  int    `json:"step_number" validate:"required,min=1"`
		Instruction string `json:"instruction" validate:"required"`
	}

	SaveComponentsRequest struct {
		Ingredients []IngredientRequest `json:"ingredients" validate:"dive"`
		Steps       []StepRequest       `json:"steps" validate:"dive"`
		Tags        []string            `json:"tags"`
	}

	ReorderStepsRequest struct {
		Steps []StepRequest `json:"steps" validate:"required,min=1,dive"`
	}

	UploadRecipeImageRequest struct {
		Image     *multipart.FileHeader `form:"image" validate:"required"`
		IsPrimary bool                  `form:"is_primary"`
	}

	GetRecipesQuery struct {
		Page       int
		Limit      int
		CategoryID string
		Search     string
		Sort       string
	}

	Recipe struct {
		ID              string    `json:"id"`
		UserID          string    `json:"user_id"`
		Title           string    `json:"title"`
		Description     string    `json:"description"`
		PrepTimeMinutes int       `json:"prep_time_minutes"`
		Servings        int       `json:"servings"`
		CategoryName    string    `json:"category_name,omitempty"`
		ImageURL        string    `json:"image_url,omitempty"`
		FavoriteCount   int       `json:"favorite_count"`
		CreatedAt       time.Time `json:"created_at"`
	}

	RecipeIngredient struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	}

	RecipeStep struct {
		StepNumber  int    `json:"step_number"`
		Instruction string `json:"instruction"`
	}

	RecipeDetail struct {
		Recipe
		Equipment   string             `json:"equipment,omitempty"`
		AuthorNote  string             `json:"author_note,omitempty"`
		Ingredients []RecipeIngredient `json:"ingredients"`
		Steps       []RecipeStep       `json:"steps"`
		Tags        []string           `json:"tags"`
		Images      []string           `json:"images"`
		ViewCount   int                `json:"view_count"`
	}

	Category struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
)
