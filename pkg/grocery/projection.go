package grocery

import (
	"Recipe-Grocery-Backend/domain"
	"Recipe-Grocery-Backend/entities"
	"Recipe-Grocery-Backend/pkg/pantry"
	"sort"
	"strings"
)

// ProjectList derives the user-facing list from stored items and a pantry
// snapshot. It never mutates its inputs.
func ProjectList(items []*entities.GroceryItem, snapshot pantry.Snapshot, includeChecked bool) []domain.GroceryListItem {
	out := make([]domain.GroceryListItem, 0, len(items))
	for _, item := range items {
		if item == nil || (item.IsChecked && !includeChecked) {
			continue
		}
		out = append(out, projectItem(item, snapshot))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func projectItem(item *entities.GroceryItem, snapshot pantry.Snapshot) domain.GroceryListItem {
	category := normalizeCategory(item.Category)
	if category == "" {
		category = domain.OtherCategory
	}

	res := domain.GroceryListItem{
		ID:                   item.ID.String(),
		Name:                 item.Name,
		NormalizedName:       item.NormalizedName,
		Category:             category,
		Unit:                 item.Unit,
		TotalQuantity:        item.TotalQuantity,
		AdjustedQuantity:     item.TotalQuantity,
		UserQuantityOverride: item.UserQuantityOverride,
		IsChecked:            item.IsChecked,
		Sources:              toSourceResponses(item.Sources),
		AddedAt:              item.AddedAt,
		UpdatedAt:            item.UpdatedAt,
	}
	if item.AmazonFreshURL != nil {
		res.AmazonFreshURL = *item.AmazonFreshURL
	}

	if entry, ok := snapshot.Lookup(item.NormalizedName); ok && pantry.SameUnit(entry.Unit, item.Unit) {
		have := entry.Quantity
		res.PantryQuantity = &have
		res.PantryUnit = entry.Unit
		res.AdjustedQuantity = item.TotalQuantity - have
		if res.AdjustedQuantity < 0 {
			res.AdjustedQuantity = 0
		}
	}

	res.EffectiveQuantity = res.AdjustedQuantity
	if item.UserQuantityOverride != nil {
		res.EffectiveQuantity = *item.UserQuantityOverride
	}
	return res
}

// normalizeCategory makes "Produce" and " produce" the same group.
func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// GroupByCategory expects a list already sorted by ProjectList.
func GroupByCategory(items []domain.GroceryListItem) []domain.GroceryCategoryGroup {
	groups := []domain.GroceryCategoryGroup{}
	for _, item := range items {
		n := len(groups)
		if n > 0 && groups[n-1].Category == item.Category {
			groups[n-1].Items = append(groups[n-1].Items, item)
			continue
		}
		groups = append(groups, domain.GroceryCategoryGroup{
			Category: item.Category,
			Items:    []domain.GroceryListItem{item},
		})
	}
	return groups
}

func toSourceResponses(sources []entities.GrocerySource) []domain.GrocerySource {
	res := make([]domain.GrocerySource, 0, len(sources))
	for _, src := range sources {
		s := domain.GrocerySource{
			RecipeID:           src.RecipeID.String(),
			RecipeName:         src.RecipeName,
			Quantity:           src.Quantity,
			Unit:               src.Unit,
			ServingsMultiplier: src.ServingsMultiplier,
			ScheduledDate:      src.ScheduledDate,
		}
		if src.MealPlanEntryID != nil {
			s.MealPlanEntryID = src.MealPlanEntryID.String()
		}
		res = append(res, s)
	}
	return res
}
