package migration

import (
	"Recipe-Grocery-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []struct {
		name  string
		model interface{}
	}{
		{"user", &entities.User{}},
		{"recipe", &entities.Recipe{}},
		{"recipe ingredient", &entities.RecipeIngredient{}},
		{"pantry item", &entities.PantryItem{}},
		{"meal plan entry", &entities.MealPlanEntry{}},
		{"grocery item", &entities.GroceryItem{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Printf("Error migrating %s database: %v", m.name, err)
			return err
		}
	}

	// Containment lookups on sources use this index when retracting a recipe.
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_grocery_items_sources ON grocery_items USING GIN (sources jsonb_path_ops);").Error; err != nil {
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
