package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessSaveRecipe      = "recipe saved successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedSaveRecipe      = "failed to save recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound           = fmt.Errorf("recipe %w", ErrNotFound)
	ErrUnauthorizedRecipeAccess = fmt.Errorf("access to recipe: %w", ErrForbidden)
)

type (
	IngredientRequest struct {
		RawText        string  `json:"raw_text" validate:"omitempty"`
		Name           string  `json:"name" validate:"required"`
		NormalizedName string  `json:"normalized_name" validate:"required"`
		Quantity       float64 `json:"quantity" validate:"gte=0"`
		Unit           string  `json:"unit" validate:"omitempty"`
		Preparation    string  `json:"preparation" validate:"omitempty"`
		Category       string  `json:"category" validate:"omitempty"`
		Optional       bool    `json:"optional"`
	}

	CreateRecipeRequest struct {
		Title           string              `json:"title" validate:"required"`
		Description     string              `json:"description" validate:"omitempty"`
		ImageURL        string              `json:"image_url" validate:"omitempty,url"`
		PrepTimeMinutes int                 `json:"prep_time_minutes" validate:"gte=0"`
		CookTimeMinutes int                 `json:"cook_time_minutes" validate:"gte=0"`
		Servings        int                 `json:"servings" validate:"omitempty,min=1"`
		Difficulty      string              `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
		CuisineType     string              `json:"cuisine_type" validate:"omitempty"`
		SourceURL       string              `json:"source_url" validate:"omitempty,url"`
		Ingredients     []IngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
	}

	Recipe struct {
		ID              string    `json:"id"`
		Title           string    `json:"title"`
		Description     string    `json:"description"`
		ImageURL        string    `json:"image_url,omitempty"`
		PrepTimeMinutes int       `json:"prep_time_minutes"`
		CookTimeMinutes int       `json:"cook_time_minutes"`
		Servings        int       `json:"servings"`
		Difficulty      string    `json:"difficulty"`
		CuisineType     string    `json:"cuisine_type"`
		CreatedAt       time.Time `json:"created_at"`
	}

	RecipeDetail struct {
		Recipe
		SourceURL   string       `json:"source_url,omitempty"`
		Ingredients []Ingredient `json:"ingredients"`
	}

	Ingredient struct {
		Name           string  `json:"name"`
		NormalizedName string  `json:"normalized_name"`
		Quantity       float64 `json:"quantity"`
		Unit           string  `json:"unit"`
		Preparation    string  `json:"preparation,omitempty"`
		Category       string  `json:"category,omitempty"`
		Optional       bool    `json:"optional"`
	}
)
