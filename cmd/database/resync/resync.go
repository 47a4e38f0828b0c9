// One-off operator script: recomputes every recipe's favorite_count from the
// favorites table. Run after any manual intervention that touched the counter
// directly.
package main

import (
	"RecipeHub-Backend/cmd/config"
	"RecipeHub-Backend/internal/utils"
	"RecipeHub-Backend/pkg/favorite"
	"context"
	"fmt"
	"log"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	repository := favorite.NewFavoriteRepository(db)
	if err := repository.SyncFavoriteCounts(context.Background()); err != nil {
		log.Fatalf("failed to sync favorite counts: %v", err)
	}

	fmt.Println("Favorite counts synchronized")
}
