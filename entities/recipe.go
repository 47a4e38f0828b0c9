package entities

import (
	"github.com/google/uuid"
)

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex" json:"name"`

	Recipes []*Recipe `gorm:"foreignKey:CategoryID"`
	Timestamp
}

type Recipe struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID  `gorm:"index" json:"user_id"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	Title           string     `json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	PrepTimeMinutes int        `json:"prep_time_minutes"`
	Servings        int        `json:"servings"`
	Equipment       string     `gorm:"type:text" json:"equipment,omitempty"`
	AuthorNote      string     `gorm:"type:text" json:"author_note,omitempty"`

	User        *User              `gorm:"foreignKey:UserID"`
	Category    *Category          `gorm:"foreignKey:CategoryID"`
	Ingredients []*Ingredient      `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Steps       []*PreparationStep `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Images      []*RecipeImage     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Tags        []*Tag             `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Statistic   *RecipeStatistic   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Timestamp
}

type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID `gorm:"index" json:"recipe_id"`
	Name     string    `json:"name"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}

type PreparationStep struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID    uuid.UUID `gorm:"uniqueIndex:uq_recipe_step_number" json:"recipe_id"`
	StepNumber  int       `gorm:"uniqueIndex:uq_recipe_step_number" json:"step_number"`
	Instruction string    `gorm:"type:text" json:"instruction"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}

type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex" json:"name"`

	Recipes []*Recipe `gorm:"many2many:recipe_tags"`
	Timestamp
}

type RecipeImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID  uuid.UUID `gorm:"index" json:"recipe_id"`
	ImageURL  string    `json:"image_url"`
	IsPrimary bool      `json:"is_primary"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}
