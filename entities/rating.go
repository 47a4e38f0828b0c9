package entities

import (
	"github.com/google/uuid"
)

type RecipeRating struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"uniqueIndex:uq_user_recipe_rating" json:"user_id"`
	RecipeID uuid.UUID `gorm:"uniqueIndex:uq_user_recipe_rating" json:"recipe_id"`
	Rating   int       `json:"rating"`
	Review   string    `gorm:"type:text" json:"review,omitempty"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Timestamp
}
