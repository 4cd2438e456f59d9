package entities

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"time"
)

// GrocerySource is one recipe's contribution to a GroceryItem. It is stored
// inline in the item's sources column, never as its own row.
type GrocerySource struct {
	RecipeID           uuid.UUID  `json:"recipe_id"`
	RecipeName         string     `json:"recipe_name"`
	Quantity           float64    `json:"quantity"`
	Unit               string     `json:"unit"`
	ServingsMultiplier float64    `json:"servings_multiplier"`
	MealPlanEntryID    *uuid.UUID `json:"meal_plan_entry_id,omitempty"`
	ScheduledDate      string     `json:"scheduled_date,omitempty"`
}

// GroceryItem is the aggregate root of the shopping list: TotalQuantity is
// derived from Sources and both are always written together.
type GroceryItem struct {
	ID                   uuid.UUID                          `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID               uuid.UUID                          `gorm:"type:uuid;not null;uniqueIndex:idx_grocery_user_normalized,priority:1" json:"user_id"`
	Name                 string                             `gorm:"not null" json:"name"`
	NormalizedName       string                             `gorm:"not null;uniqueIndex:idx_grocery_user_normalized,priority:2" json:"normalized_name"`
	Category             string                             `json:"category,omitempty"`
	Unit                 string                             `json:"unit"`
	TotalQuantity        float64                            `gorm:"not null;default:0" json:"total_quantity"`
	Sources              datatypes.JSONSlice[GrocerySource] `gorm:"type:jsonb;not null" json:"sources"`
	UserQuantityOverride *float64                           `json:"user_quantity_override,omitempty"`
	IsChecked            bool                               `gorm:"not null;default:false;index" json:"is_checked"`
	AmazonFreshURL       *string                            `json:"amazon_fresh_url,omitempty"`
	Version              int                                `gorm:"not null;default:1" json:"-"`
	AddedAt              time.Time                          `gorm:"type:timestamp with time zone" json:"added_at"`
	UpdatedAt            time.Time                          `gorm:"type:timestamp with time zone" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
