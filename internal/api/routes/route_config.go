package routes

import (
	"RecipeHub-Backend/internal/api/handlers"
	"RecipeHub-Backend/internal/middleware"
	"RecipeHub-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	RecipeHandler   handlers.RecipeHandler
	FavoriteHandler handlers.FavoriteHandler
	RatingHandler   handlers.RatingHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Users()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Post("/refresh-token", c.UserHandler.RefreshToken)
		auth.Post("/logout", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Logout)
		auth.Post("/forgot-password", c.UserHandler.ForgotPassword)
		auth.Post("/reset-password", c.UserHandler.ResetPassword)
	}
}

func (c *Config) Users() {
	users := c.App.Group("/api/v1/users", c.Middleware.AuthMiddleware(c.JWTService))
	{
		users.Get("/me", c.UserHandler.Me)
		users.Patch("/me", c.UserHandler.UpdateUser)
		users.Post("/me/avatar", c.UserHandler.UploadAvatar)
		users.Get("/me/favorites", c.FavoriteHandler.GetUserFavorites)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")

	// public reads
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Get("/:id/ratings", c.RatingHandler.GetRecipeRatings)
	recipes.Get("/:id/statistics", c.FavoriteHandler.GetStatistics)

	// author and interaction routes
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	recipes.Post("", auth, c.RecipeHandler.CreateRecipe)
	recipes.Patch("/:id", auth, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)
	recipes.Post("/:id/components", auth, c.RecipeHandler.SaveComponents)
	recipes.Put("/:id/steps/reorder", auth, c.RecipeHandler.ReorderSteps)
	recipes.Post("/:id/images", auth, c.RecipeHandler.UploadRecipeImage)
	recipes.Post("/:id/favorite", auth, c.FavoriteHandler.AddFavorite)
	recipes.Delete("/:id/favorite", auth, c.FavoriteHandler.RemoveFavorite)
	recipes.Get("/:id/favorite", auth, c.FavoriteHandler.GetFavoriteStatus)
	recipes.Post("/:id/ratings", auth, c.RatingHandler.SaveRating)
	recipes.Delete("/:id/ratings", auth, c.RatingHandler.DeleteRating)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/api/v1/categories", c.RecipeHandler.GetCategories)
}
