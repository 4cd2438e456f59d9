package entities

import (
	"github.com/google/uuid"
	"time"
)

type MealPlanEntry struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;index:idx_meal_plan_user_date,priority:1" json:"user_id"`
	RecipeID           uuid.UUID `gorm:"type:uuid;index" json:"recipe_id"`
	ScheduledDate      time.Time `gorm:"type:date;index:idx_meal_plan_user_date,priority:2" json:"scheduled_date"`
	MealType           string    `json:"meal_type"` // Breakfast, Lunch, Dinner, Snack
	ServingsMultiplier float64   `gorm:"not null;default:1" json:"servings_multiplier"`
	AddedToGroceryList bool      `json:"added_to_grocery_list"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
