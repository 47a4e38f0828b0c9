package entities

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:uq_user_recipe_favorite" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"uniqueIndex:uq_user_recipe_favorite" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

type RecipeStatistic struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID      uuid.UUID `gorm:"uniqueIndex" json:"recipe_id"`
	FavoriteCount int       `gorm:"default:0" json:"favorite_count"`
	ViewCount     int       `gorm:"default:0" json:"view_count"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
	Timestamp
}
