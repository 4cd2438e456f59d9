package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessAddRecipeToGrocery = "recipe ingredients added to grocery list"
	MessageSuccessRemoveRecipeSource = "recipe removed from grocery list"
	MessageSuccessGetGroceryList     = "grocery list retrieved successfully"
	MessageSuccessGetGroceryCount    = "grocery count retrieved successfully"
	MessageSuccessUpdateGroceryItem  = "grocery item updated successfully"
	MessageSuccessDeleteGroceryItem  = "grocery item deleted successfully"
	MessageSuccessClearGroceryList   = "grocery list cleared successfully"
	MessageSuccessExportGroceryList  = "grocery list exported successfully"
	MessageSuccessDeleteExport       = "grocery list export deleted successfully"
	MessageSuccessEmailGroceryList   = "grocery list sent successfully"
	MessageSuccessSetAmazonFreshURL  = "amazon fresh link saved successfully"

	MessageFailedAddRecipeToGrocery = "failed to add recipe to grocery list"
	MessageFailedRemoveRecipeSource = "failed to remove recipe from grocery list"
	MessageFailedGetGroceryList     = "failed to retrieve grocery list"
	MessageFailedGetGroceryCount    = "failed to retrieve grocery count"
	MessageFailedUpdateGroceryItem  = "failed to update grocery item"
	MessageFailedDeleteGroceryItem  = "failed to delete grocery item"
	MessageFailedClearGroceryList   = "failed to clear grocery list"
	MessageFailedExportGroceryList  = "failed to export grocery list"
	MessageFailedDeleteExport       = "failed to delete grocery list export"
	MessageFailedEmailGroceryList   = "failed to send grocery list"
	MessageFailedSetAmazonFreshURL  = "failed to save amazon fresh link"

	ErrGroceryItemNotFound       = fmt.Errorf("grocery item %w", ErrNotFound)
	ErrUnauthorizedGroceryAccess = fmt.Errorf("access to grocery item: %w", ErrForbidden)
	ErrInvalidServingsMultiplier = fmt.Errorf("servings multiplier must be positive: %w", ErrInvalidInput)
	ErrInvalidQuantityOverride   = fmt.Errorf("quantity override must not be negative: %w", ErrInvalidInput)
	ErrInvalidScheduledDate      = fmt.Errorf("scheduled date must be YYYY-MM-DD: %w", ErrInvalidInput)
	ErrNothingToUpdate           = fmt.Errorf("no updatable field provided: %w", ErrInvalidInput)
	ErrConflictingOverride       = fmt.Errorf("clear_override cannot be combined with user_quantity_override: %w", ErrInvalidInput)
	ErrUnauthorizedExportAccess  = fmt.Errorf("access to export: %w", ErrForbidden)
	ErrEmptyGroceryList          = fmt.Errorf("grocery list is empty: %w", ErrInvalidInput)
)

// OtherCategory is the bucket for items without a category.
const OtherCategory = "other"

type (
	AddRecipeToGroceryRequest struct {
		RecipeID           string  `json:"recipe_id" validate:"required,uuid"`
		ServingsMultiplier float64 `json:"servings_multiplier" validate:"omitempty,gt=0"`
		MealPlanEntryID    string  `json:"meal_plan_entry_id,omitempty" validate:"omitempty,uuid"`
		ScheduledDate      string  `json:"scheduled_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	}

	AddRecipeToGroceryResponse struct {
		Added     int `json:"added"`
		Updated   int `json:"updated"`
		Unchanged int `json:"unchanged"`
		Skipped   int `json:"skipped"`
	}

	RemoveRecipeSourceRequest struct {
		RecipeID        string `json:"recipe_id" validate:"required,uuid"`
		MealPlanEntryID string `json:"meal_plan_entry_id,omitempty" validate:"omitempty,uuid"`
	}

	RemoveRecipeSourceResponse struct {
		Removed int `json:"removed"`
		Updated int `json:"updated"`
	}

	UpdateGroceryItemRequest struct {
		UserQuantityOverride *float64 `json:"user_quantity_override,omitempty" validate:"omitempty,gte=0"`
		ClearOverride        bool     `json:"clear_override"`
		IsChecked            *bool    `json:"is_checked,omitempty"`
	}

	SetAmazonFreshURLRequest struct {
		URL string `json:"url" validate:"required,url"`
	}

	EmailGroceryListRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	GrocerySource struct {
		RecipeID           string  `json:"recipe_id"`
		RecipeName         string  `json:"recipe_name"`
		Quantity           float64 `json:"quantity"`
		Unit               string  `json:"unit"`
		ServingsMultiplier float64 `json:"servings_multiplier"`
		MealPlanEntryID    string  `json:"meal_plan_entry_id,omitempty"`
		ScheduledDate      string  `json:"scheduled_date,omitempty"`
	}

	GroceryListItem struct {
		ID                   string          `json:"id"`
		Name                 string          `json:"name"`
		NormalizedName       string          `json:"normalized_name"`
		Category             string          `json:"category"`
		Unit                 string          `json:"unit"`
		TotalQuantity        float64         `json:"total_quantity"`
		AdjustedQuantity     float64         `json:"adjusted_quantity"`
		EffectiveQuantity    float64         `json:"effective_quantity"`
		PantryQuantity       *float64        `json:"pantry_quantity,omitempty"`
		PantryUnit           string          `json:"pantry_unit,omitempty"`
		UserQuantityOverride *float64        `json:"user_quantity_override,omitempty"`
		IsChecked            bool            `json:"is_checked"`
		AmazonFreshURL       string          `json:"amazon_fresh_url,omitempty"`
		Sources              []GrocerySource `json:"sources"`
		AddedAt              time.Time       `json:"added_at"`
		UpdatedAt            time.Time       `json:"updated_at"`
	}

	GroceryCategoryGroup struct {
		Category string            `json:"category"`
		Items    []GroceryListItem `json:"items"`
	}

	GroceryListResponse struct {
		Items []GroceryListItem `json:"items"`
		Total int               `json:"total"`
	}

	GroceryCountResponse struct {
		Count int64 `json:"count"`
	}

	ClearGroceryListResponse struct {
		Deleted int64 `json:"deleted"`
	}

	ExportGroceryListResponse struct {
		URL       string `json:"url"`
		ItemCount int    `json:"item_count"`
	}

	DeleteExportRequest struct {
		URL string `json:"url" validate:"required,url"`
	}
)
