package config

import (
	"Recipe-Grocery-Backend/internal/api/handlers"
	"Recipe-Grocery-Backend/internal/api/routes"
	"Recipe-Grocery-Backend/internal/middleware"
	"Recipe-Grocery-Backend/internal/utils"
	"Recipe-Grocery-Backend/internal/utils/mailing"
	"Recipe-Grocery-Backend/internal/utils/storage"
	"Recipe-Grocery-Backend/pkg/grocery"
	"Recipe-Grocery-Backend/pkg/jwt"
	"Recipe-Grocery-Backend/pkg/mealplan"
	"Recipe-Grocery-Backend/pkg/pantry"
	"Recipe-Grocery-Backend/pkg/recipe"
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
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	groceryRepository := grocery.NewGroceryRepository(db)
	pantryRepository := pantry.NewPantryRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	mealPlanRepository := mealplan.NewMealPlanRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	groceryService := grocery.NewGroceryService(
		groceryRepository,
		recipeRepository,
		pantryRepository,
		s3,
		mailing.SendMail,
	)
	pantryService := pantry.NewPantryService(pantryRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, groceryService)
	mealPlanService := mealplan.NewMealPlanService(mealPlanRepository, recipeRepository, groceryService)

	// Handler
	groceryHandler := handlers.NewGroceryHandler(groceryService, validator)
	pantryHandler := handlers.NewPantryHandler(pantryService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	mealPlanHandler := handlers.NewMealPlanHandler(mealPlanService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		GroceryHandler:  groceryHandler,
		PantryHandler:   pantryHandler,
		RecipeHandler:   recipeHandler,
		MealPlanHandler: mealPlanHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
