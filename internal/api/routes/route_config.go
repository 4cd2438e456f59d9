package routes

import (
	"Recipe-Grocery-Backend/internal/api/handlers"
	"Recipe-Grocery-Backend/internal/metrics"
	"Recipe-Grocery-Backend/internal/middleware"
	"Recipe-Grocery-Backend/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	GroceryHandler  handlers.GroceryHandler
	PantryHandler   handlers.PantryHandler
	RecipeHandler   handlers.RecipeHandler
	MealPlanHandler handlers.MealPlanHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Grocery()
	c.Pantry()
	c.Recipes()
	c.MealPlans()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", metrics.Handler())
}

func (c *Config) Grocery() {
	grocery := c.App.Group("/api/v1/grocery", c.Middleware.AuthMiddleware(c.JWTService))

	grocery.Get("", c.GroceryHandler.GetList)
	grocery.Get("/grouped", c.GroceryHandler.GetGroupedList)
	grocery.Get("/count", c.GroceryHandler.GetCount)
	grocery.Delete("", c.GroceryHandler.ClearAll)

	// recipe sources
	grocery.Post("/recipes", c.GroceryHandler.AddRecipe)
	grocery.Delete("/recipes", c.GroceryHandler.RemoveRecipe)

	// export
	grocery.Post("/export", c.GroceryHandler.ExportList)
	grocery.Delete("/export", c.GroceryHandler.DeleteExport)
	grocery.Post("/email", c.GroceryHandler.EmailList)

	grocery.Patch("/:id", c.GroceryHandler.UpdateItem)
	grocery.Put("/:id/amazon-fresh", c.GroceryHandler.SetAmazonFreshURL)
	grocery.Delete("/:id", c.GroceryHandler.RemoveItem)
}

func (c *Config) Pantry() {
	pantry := c.App.Group("/api/v1/pantry", c.Middleware.AuthMiddleware(c.JWTService))

	pantry.Post("", c.PantryHandler.AddPantryItem)
	pantry.Get("", c.PantryHandler.GetPantryItems)
	pantry.Put("/:id", c.PantryHandler.UpdatePantryItem)
	pantry.Delete("/:id", c.PantryHandler.DeletePantryItem)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	recipes.Post("", c.RecipeHandler.CreateRecipe)
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
}

func (c *Config) MealPlans() {
	mealPlans := c.App.Group("/api/v1/meal-plans", c.Middleware.AuthMiddleware(c.JWTService))

	mealPlans.Post("", c.MealPlanHandler.AddEntry)
	mealPlans.Get("", c.MealPlanHandler.ListEntries)
	mealPlans.Delete("/:id", c.MealPlanHandler.RemoveEntry)
}
