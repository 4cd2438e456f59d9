package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessAddMealPlanEntry    = "meal plan entry added successfully"
	MessageSuccessDeleteMealPlanEntry = "meal plan entry deleted successfully"
	MessageSuccessGetMealPlan         = "meal plan retrieved successfully"

	MessageFailedAddMealPlanEntry    = "failed to add meal plan entry"
	MessageFailedDeleteMealPlanEntry = "failed to delete meal plan entry"
	MessageFailedGetMealPlan         = "failed to retrieve meal plan"

	ErrMealPlanEntryNotFound      = fmt.Errorf("meal plan entry %w", ErrNotFound)
	ErrUnauthorizedMealPlanAccess = fmt.Errorf("access to meal plan entry: %w", ErrForbidden)
	ErrInvalidDateRange           = fmt.Errorf("invalid date range: %w", ErrInvalidInput)
)

type (
	AddMealPlanEntryRequest struct {
		RecipeID           string  `json:"recipe_id" validate:"required,uuid"`
		ScheduledDate      string  `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
		MealType           string  `json:"meal_type" validate:"required,oneof=Breakfast Lunch Dinner Snack"`
		ServingsMultiplier float64 `json:"servings_multiplier" validate:"omitempty,gt=0"`
		AddToGroceryList   bool    `json:"add_to_grocery_list"`
	}

	MealPlanEntryResponse struct {
		ID                 string                      `json:"id"`
		RecipeID           string                      `json:"recipe_id"`
		RecipeTitle        string                      `json:"recipe_title,omitempty"`
		ScheduledDate      string                      `json:"scheduled_date"`
		MealType           string                      `json:"meal_type"`
		ServingsMultiplier float64                     `json:"servings_multiplier"`
		AddedToGroceryList bool                        `json:"added_to_grocery_list"`
		Grocery            *AddRecipeToGroceryResponse `json:"grocery,omitempty"`
		CreatedAt          time.Time                   `json:"created_at"`
	}

	DeleteMealPlanEntryResponse struct {
		Grocery RemoveRecipeSourceResponse `json:"grocery"`
	}
)
