package pantry

import (
	"Recipe-Grocery-Backend/entities"
	"context"
	"strings"
)

// Entry is what the grocery projection needs to know about one pantry
// ingredient.
type Entry struct {
	NormalizedName string
	Quantity       float64
	Unit           string
}

// Snapshot is a read-only view of a user's pantry keyed by normalized name.
type Snapshot map[string]Entry

// Reader is the subset of PantryRepository needed to build a Snapshot.
type Reader interface {
	GetAllPantryItems(ctx context.Context, userID string) ([]*entities.PantryItem, error)
}

func LoadSnapshot(ctx context.Context, reader Reader, userID string) (Snapshot, error) {
	items, err := reader.GetAllPantryItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildSnapshot(items), nil
}

// BuildSnapshot keys items by normalized name. The first item seen for a
// name fixes the unit; later items with the same unit (ignoring case) are
// added to it, others are ignored.
func BuildSnapshot(items []*entities.PantryItem) Snapshot {
	snapshot := make(Snapshot, len(items))
	for _, item := range items {
		if item == nil || item.NormalizedName == "" {
			continue
		}
		existing, ok := snapshot[item.NormalizedName]
		if !ok {
			snapshot[item.NormalizedName] = Entry{
				NormalizedName: item.NormalizedName,
				Quantity:       item.Quantity,
				Unit:           item.Unit,
			}
			continue
		}
		if SameUnit(existing.Unit, item.Unit) {
			existing.Quantity += item.Quantity
			snapshot[item.NormalizedName] = existing
		}
	}
	return snapshot
}

func (s Snapshot) Lookup(normalizedName string) (Entry, bool) {
	e, ok := s[normalizedName]
	return e, ok
}

// SameUnit reports whether two unit strings are equal ignoring case and
// surrounding whitespace. No conversion between units is attempted.
func SameUnit(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
