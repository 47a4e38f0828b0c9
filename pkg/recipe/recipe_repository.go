package recipe

import (
	"RecipeHub-Backend/domain"
	"RecipeHub-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, query domain.GetRecipesQuery) ([]*entities.Recipe, int64, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id string) error
		ReplaceComponents(ctx context.Context, recipeID string, ingredients []*entities.Ingredient, steps []*entities.PreparationStep, tagNames []string) error
		ReorderSteps(ctx context.Context, recipeID string, steps []*entities.PreparationStep) error
		GetStepsByRecipeID(ctx context.Context, recipeID string) ([]*entities.PreparationStep, error)
		IncrementViewCount(ctx context.Context, recipeID string) error
		AddRecipeImage(ctx context.Context, image *entities.RecipeImage) error
		GetCategories(ctx context.Context) ([]*entities.Category, error)
		GetCategoryByID(ctx context.Context, id string) (*entities.Category, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Preload("Category").
		Preload("Ingredients").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("preparation_steps.step_number asc")
		}).
		Preload("Tags").
		Preload("Images").
		Preload("Statistic").
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, query domain.GetRecipesQuery) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (query.Page - 1) * query.Limit

	base := r.db.WithContext(ctx).Model(&entities.Recipe{})
	if query.CategoryID != "" {
		base = base.Where("recipes.category_id = ?", query.CategoryID)
	}
	if query.Search != "" {
		base = base.Where("recipes.title ILIKE ?", "%"+query.Search+"%")
	}

	if err := base.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	listQuery := base.Session(&gorm.Session{}).
		Preload("Category").
		Preload("Images").
		Preload("Statistic").
		Offset(offset).
		Limit(query.Limit)

	if query.Sort == domain.SortPopular {
		listQuery = listQuery.
			Joins("LEFT JOIN recipe_statistics ON recipe_statistics.recipe_id = recipes.id").
			Order("COALESCE(recipe_statistics.favorite_count, 0) desc")
	} else {
		listQuery = listQuery.Order("recipes.created_at desc")
	}

	if err := listQuery.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	// Child rows (ingredients, steps, images, tags, ratings, favorites,
	// statistics) go away via the ON DELETE CASCADE foreign keys.
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entities.Recipe{}).Error
}

// ReplaceComponents swaps the full ingredient list, step list and tag set of
// a recipe in one transaction. This is replace, not merge: callers send the
// complete desired set, and any failure leaves the previous components
// untouched.
func (r *recipeRepository) ReplaceComponents(ctx context.Context, recipeID string, ingredients []*entities.Ingredient, steps []*entities.PreparationStep, tagNames []string) error {
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("recipe_id = ?", recipeUUID).
			Delete(&entities.Ingredient{}).Error; err != nil {
			return err
		}
		if len(ingredients) > 0 {
			if err := tx.Create(&ingredients).Error; err != nil {
				return err
			}
		}

		if err := tx.
			Where("recipe_id = ?", recipeUUID).
			Delete(&entities.PreparationStep{}).Error; err != nil {
			return err
		}
		if len(steps) > 0 {
			if err := tx.Create(&steps).Error; err != nil {
				return err
			}
		}

		rec := entities.Recipe{ID: recipeUUID}
		if err := tx.Model(&rec).Association("Tags").Clear(); err != nil {
			return err
		}
		if len(tagNames) > 0 {
			tags := make([]*entities.Tag, 0, len(tagNames))
			for _, name := range tagNames {
				var tag entities.Tag
				if err := tx.
					Where("name = ?", name).
					Attrs(entities.Tag{ID: uuid.New()}).
					FirstOrCreate(&tag, entities.Tag{Name: name}).Error; err != nil {
					return err
				}
				tags = append(tags, &tag)
			}
			if err := tx.Model(&rec).Association("Tags").Append(tags); err != nil {
				return err
			}
		}

		return nil
	})
}

// ReorderSteps persists the caller-supplied ordering as sent. Step numbers
// are not renumbered or checked for contiguity here.
func (r *recipeRepository) ReorderSteps(ctx context.Context, recipeID string, steps []*entities.PreparationStep) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("recipe_id = ?", recipeID).
			Delete(&entities.PreparationStep{}).Error; err != nil {
			return err
		}
		return tx.Create(&steps).Error
	})
}

func (r *recipeRepository) GetStepsByRecipeID(ctx context.Context, recipeID string) ([]*entities.PreparationStep, error) {
	var steps []*entities.PreparationStep
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("step_number asc").
		Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

func (r *recipeRepository) IncrementViewCount(ctx context.Context, recipeID string) error {
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Model(&entities.RecipeStatistic{}).
		Where("recipe_id = ?", recipeUUID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		stat := entities.RecipeStatistic{
			ID:        uuid.New(),
			RecipeID:  recipeUUID,
			ViewCount: 1,
		}
		return r.db.WithContext(ctx).Create(&stat).Error
	}
	return nil
}

func (r *recipeRepository) AddRecipeImage(ctx context.Context, image *entities.RecipeImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *recipeRepository) GetCategories(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).
		Order("name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *recipeRepository) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
