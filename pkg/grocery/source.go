package grocery

import (
	"Recipe-Grocery-Backend/entities"
	"github.com/google/uuid"
)

// sourceKey identifies one contribution to a grocery item. A nil
// MealPlanEntryID is a key value of its own unless anyEntry is set, in which
// case every source of the recipe matches.
type sourceKey struct {
	recipeID        uuid.UUID
	mealPlanEntryID *uuid.UUID
	anyEntry        bool
}

func contributionKey(src entities.GrocerySource) sourceKey {
	return sourceKey{recipeID: src.RecipeID, mealPlanEntryID: src.MealPlanEntryID}
}

// retractionKey matches what RemoveRecipeSource should drop. Without an
// entry id the whole recipe is retracted.
func retractionKey(recipeID uuid.UUID, mealPlanEntryID *uuid.UUID) sourceKey {
	return sourceKey{
		recipeID:        recipeID,
		mealPlanEntryID: mealPlanEntryID,
		anyEntry:        mealPlanEntryID == nil,
	}
}

func (k sourceKey) matches(src entities.GrocerySource) bool {
	if src.RecipeID != k.recipeID {
		return false
	}
	if k.anyEntry {
		return true
	}
	return sameEntry(k.mealPlanEntryID, src.MealPlanEntryID)
}

func sameEntry(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func hasSource(sources []entities.GrocerySource, key sourceKey) bool {
	for _, src := range sources {
		if key.matches(src) {
			return true
		}
	}
	return false
}

func sumSources(sources []entities.GrocerySource) float64 {
	var total float64
	for _, src := range sources {
		total += src.Quantity
	}
	return total
}

// partitionSources splits sources into those kept and the number removed.
// The kept slice is freshly allocated.
func partitionSources(sources []entities.GrocerySource, key sourceKey) ([]entities.GrocerySource, int) {
	kept := make([]entities.GrocerySource, 0, len(sources))
	removed := 0
	for _, src := range sources {
		if key.matches(src) {
			removed++
			continue
		}
		kept = append(kept, src)
	}
	return kept, removed
}
