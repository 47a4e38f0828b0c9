package config

import (
	"RecipeHub-Backend/internal/api/handlers"
	"RecipeHub-Backend/internal/api/routes"
	"RecipeHub-Backend/internal/middleware"
	"RecipeHub-Backend/internal/utils"
	"RecipeHub-Backend/internal/utils/storage"
	"RecipeHub-Backend/pkg/favorite"
	"RecipeHub-Backend/pkg/jwt"
	"RecipeHub-Backend/pkg/rating"
	"RecipeHub-Backend/pkg/recipe"
	"RecipeHub-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	favoriteRepository := favorite.NewFavoriteRepository(db)
	ratingRepository := rating.NewRatingRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, s3)
	recipeService := recipe.NewRecipeService(recipeRepository, s3)
	favoriteService := favorite.NewFavoriteService(favoriteRepository)
	ratingService := rating.NewRatingService(ratingRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	ratingHandler := handlers.NewRatingHandler(ratingService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		RecipeHandler:   recipeHandler,
		FavoriteHandler: favoriteHandler,
		RatingHandler:   ratingHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
