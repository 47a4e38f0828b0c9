package domain

import (
	"errors"
)

var (
	MessageSuccessAddFavorite    = "recipe added to favorites"
	MessageSuccessRemoveFavorite = "recipe removed from favorites"
	MessageSuccessGetFavorites   = "success get favorite recipes"
	MessageSuccessGetFavorite    = "success get favorite status"
	MessageSuccessGetStatistics  = "success get recipe statistics"
	MessageSuccessSyncFavorites  = "favorite counts synchronized"

	MessageFailedAddFavorite    = "failed to add favorite"
	MessageFailedRemoveFavorite = "failed to remove favorite"
	MessageFailedGetFavorites   = "failed to get favorite recipes"
	MessageFailedGetFavorite    = "failed to get favorite status"
	MessageFailedGetStatistics  = "failed to get recipe statistics"
	MessageFailedSyncFavorites  = "failed to synchronize favorite counts"

	ErrFavoriteNotFound = errors.New("favorite not found")
)

type (
	FavoriteStatusResponse struct {
		IsFavorite bool `json:"is_favorite"`
	}

	RecipeStatisticsResponse struct {
		RecipeID      string `json:"recipe_id"`
		FavoriteCount int    `json:"favorite_count"`
		ViewCount     int    `json:"view_count"`
	}
)
