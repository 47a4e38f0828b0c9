package migration

import (
	"RecipeHub-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	models := []interface{}{
		&entities.User{},
		&entities.RefreshToken{},
		&entities.PasswordResetToken{},
		&entities.Category{},
		&entities.Recipe{},
		&entities.Ingredient{},
		&entities.PreparationStep{},
		&entities.Tag{},
		&entities.RecipeImage{},
		&entities.Favorite{},
		&entities.RecipeStatistic{},
		&entities.RecipeRating{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Fatalf("Error migrating database: %v", err)
			return err
		}
	}

	fmt.Println("Database migration complete")
	return nil
}
