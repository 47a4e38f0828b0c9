package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessSaveRating   = "rating saved successfully"
	MessageSuccessGetRatings   = "success get recipe ratings"
	MessageSuccessDeleteRating = "rating deleted successfully"

	MessageFailedSaveRating   = "failed to save rating"
	MessageFailedGetRatings   = "failed to get recipe ratings"
	MessageFailedDeleteRating = "failed to delete rating"

	ErrRatingNotFound = errors.New("rating not found")
)

type (
	SaveRatingRequest struct {
		Rating int    `json:"rating" validate:"required,min=1,max=5"`
		Review string `json:"review,omitempty"`
	}

	Rating struct {
		UserID    string    `json:"user_id"`
		UserName  string    `json:"user_name,omitempty"`
		Rating    int       `json:"rating"`
		Review    string    `json:"review,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}

	RecipeRatingsResponse struct {
		Ratings []Rating `json:"ratings"`
		Average float64  `json:"average"`
		Count   int64    `json:"count"`
	}
)
