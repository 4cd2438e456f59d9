// File: entities/recipe.go
package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"image_url,omitempty"`
	PrepTimeMinutes int       `json:"prep_time_minutes"`
	CookTimeMinutes int       `json:"cook_time_minutes"`
	Servings        int       `json:"servings"`
	Difficulty      string    `json:"difficulty"`
	CuisineType     string    `json:"cuisine_type"`
	SourceURL       string    `json:"source_url,omitempty"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	User        *User              `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

// RecipeIngredient arrives already normalized by the extraction pipeline.
type RecipeIngredient struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID       uuid.UUID `gorm:"type:uuid;index" json:"recipe_id"`
	RawText        string    `json:"raw_text,omitempty"`
	Name           string    `json:"name"`
	NormalizedName string    `gorm:"index" json:"normalized_name"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit"`
	Preparation    string    `json:"preparation,omitempty"`
	Category       string    `json:"category,omitempty"`
	Optional       bool      `json:"optional"`
	SortOrder      int       `json:"sort_order"`
}
