package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessAddPantryItem    = "pantry item added successfully"
	MessageSuccessUpdatePantryItem = "pantry item updated successfully"
	MessageSuccessDeletePantryItem = "pantry item deleted successfully"
	MessageSuccessGetPantryItems   = "pantry items retrieved successfully"

	MessageFailedAddPantryItem    = "failed to add pantry item"
	MessageFailedUpdatePantryItem = "failed to update pantry item"
	MessageFailedDeletePantryItem = "failed to delete pantry item"
	MessageFailedGetPantryItems   = "failed to retrieve pantry items"

	ErrPantryItemNotFound       = fmt.Errorf("pantry item %w", ErrNotFound)
	ErrUnauthorizedPantryAccess = fmt.Errorf("access to pantry item: %w", ErrForbidden)
	ErrInvalidExpiryDate        = fmt.Errorf("invalid expiry date: %w", ErrInvalidInput)
	ErrInvalidQuantity          = fmt.Errorf("quantity must not be negative: %w", ErrInvalidInput)
)

type (
	AddPantryItemRequest struct {
		Name           string  `json:"name" validate:"required"`
		NormalizedName string  `json:"normalized_name" validate:"required"`
		Quantity       float64 `json:"quantity" validate:"gte=0"`
		Unit           string  `json:"unit" validate:"required"`
		Category       string  `json:"category" validate:"omitempty"`
		ExpiryDate     string  `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	}

	UpdatePantryItemRequest struct {
		Name           string   `json:"name" validate:"omitempty"`
		NormalizedName string   `json:"normalized_name" validate:"omitempty"`
		Quantity       *float64 `json:"quantity" validate:"omitempty,gte=0"`
		Unit           string   `json:"unit" validate:"omitempty"`
		Category       string   `json:"category" validate:"omitempty"`
		ExpiryDate     string   `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	}

	PantryItemResponse struct {
		ID             string     `json:"id"`
		Name           string     `json:"name"`
		NormalizedName string     `json:"normalized_name"`
		Quantity       float64    `json:"quantity"`
		Unit           string     `json:"unit"`
		Category       string     `json:"category,omitempty"`
		ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
		CreatedAt      time.Time  `json:"created_at"`
	}
)
