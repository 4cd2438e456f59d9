package grocery

import (
	"Recipe-Grocery-Backend/entities"
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeGroceryRepository mimics the postgres repository: rows are copied in
// and out, updates are version checked and (user, normalized name) is unique.
type fakeGroceryRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entities.GroceryItem

	// afterRead runs once, after the next GetItemByNormalizedName, to
	// simulate a concurrent writer.
	afterRead func(r *fakeGroceryRepository)
	// afterScan runs once, after the next GetItemsByRecipe.
	afterScan func(r *fakeGroceryRepository)
	conflicts int
}

func newFakeGroceryRepository() *fakeGroceryRepository {
	return &fakeGroceryRepository{items: map[uuid.UUID]*entities.GroceryItem{}}
}

func copyItem(item *entities.GroceryItem) *entities.GroceryItem {
	cp := *item
	cp.Sources = append([]entities.GrocerySource(nil), item.Sources...)
	if item.UserQuantityOverride != nil {
		v := *item.UserQuantityOverride
		cp.UserQuantityOverride = &v
	}
	if item.AmazonFreshURL != nil {
		v := *item.AmazonFreshURL
		cp.AmazonFreshURL = &v
	}
	return &cp
}

func (r *fakeGroceryRepository) GetItemByID(ctx context.Context, id string) (*entities.GroceryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	item, ok := r.items[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return copyItem(item), nil
}

func (r *fakeGroceryRepository) GetItemByNormalizedName(ctx context.Context, userID, normalizedName string) (*entities.GroceryItem, error) {
	r.mu.Lock()
	var found *entities.GroceryItem
	for _, item := range r.items {
		if item.UserID.String() == userID && item.NormalizedName == normalizedName {
			found = copyItem(item)
			break
		}
	}
	hook := r.afterRead
	r.afterRead = nil
	r.mu.Unlock()

	if hook != nil {
		hook(r)
	}
	if found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return found, nil
}

func (r *fakeGroceryRepository) GetItemsByUser(ctx context.Context, userID string) ([]*entities.GroceryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.GroceryItem
	for _, item := range r.items {
		if item.UserID.String() == userID {
			out = append(out, copyItem(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedAt.Before(out[j].AddedAt) })
	return out, nil
}

func (r *fakeGroceryRepository) GetItemsByRecipe(ctx context.Context, userID, recipeID string) ([]*entities.GroceryItem, error) {
	all, _ := r.GetItemsByUser(ctx, userID)
	var out []*entities.GroceryItem
	for _, item := range all {
		for _, src := range item.Sources {
			if src.RecipeID.String() == recipeID {
				out = append(out, item)
				break
			}
		}
	}

	r.mu.Lock()
	hook := r.afterScan
	r.afterScan = nil
	r.mu.Unlock()
	if hook != nil {
		hook(r)
	}
	return out, nil
}

func (r *fakeGroceryRepository) CreateItem(ctx context.Context, item *entities.GroceryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.UserID == item.UserID && existing.NormalizedName == item.NormalizedName {
			r.conflicts++
			return ErrItemExists
		}
	}
	if item.Version == 0 {
		item.Version = 1
	}
	r.items[item.ID] = copyItem(item)
	return nil
}

func (r *fakeGroceryRepository) UpdateItemSources(ctx context.Context, item *entities.GroceryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[item.ID]
	if !ok || stored.Version != item.Version {
		r.conflicts++
		return ErrVersionConflict
	}
	next := copyItem(stored)
	next.Name = item.Name
	next.Category = item.Category
	next.Unit = item.Unit
	next.TotalQuantity = item.TotalQuantity
	next.Sources = append([]entities.GrocerySource(nil), item.Sources...)
	next.UpdatedAt = item.UpdatedAt
	next.Version = stored.Version + 1
	r.items[item.ID] = next
	item.Version++
	return nil
}

func (r *fakeGroceryRepository) DeleteItemVersion(ctx context.Context, item *entities.GroceryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[item.ID]
	if !ok || stored.Version != item.Version {
		r.conflicts++
		return ErrVersionConflict
	}
	delete(r.items, item.ID)
	return nil
}

func (r *fakeGroceryRepository) UpdateItemFields(ctx context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[uuid.MustParse(id)]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "user_quantity_override":
			if v == nil {
				stored.UserQuantityOverride = nil
			} else {
				f := v.(float64)
				stored.UserQuantityOverride = &f
			}
		case "is_checked":
			stored.IsChecked = v.(bool)
		case "amazon_fresh_url":
			s := v.(string)
			stored.AmazonFreshURL = &s
		}
	}
	return nil
}

func (r *fakeGroceryRepository) DeleteItem(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, uuid.MustParse(id))
	return nil
}

func (r *fakeGroceryRepository) DeleteItemsByUser(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, item := range r.items {
		if item.UserID.String() == userID {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeGroceryRepository) CountUnchecked(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, item := range r.items {
		if item.UserID.String() == userID && !item.IsChecked {
			n++
		}
	}
	return n, nil
}

func (r *fakeGroceryRepository) byName(userID uuid.UUID, normalizedName string) *entities.GroceryItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.UserID == userID && item.NormalizedName == normalizedName {
			return copyItem(item)
		}
	}
	return nil
}

type fakeRecipeProvider map[uuid.UUID]*entities.Recipe

func (p fakeRecipeProvider) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	recipe, ok := p[uuid.MustParse(id)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return recipe, nil
}

type fakePantryReader []*entities.PantryItem

func (p fakePantryReader) GetAllPantryItems(ctx context.Context, userID string) ([]*entities.PantryItem, error) {
	var out []*entities.PantryItem
	for _, item := range p {
		if item.UserID.String() == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeS3 struct {
	uploads map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{uploads: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeS3) UploadObject(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	s.uploads[key] = data
	s.types[key] = contentType
	return key, nil
}

func (s *fakeS3) DeleteFile(ctx context.Context, key string) error {
	delete(s.uploads, key)
	return nil
}

func (s *fakeS3) GetPublicLinkKey(key string) string {
	return "https://bucket.example/" + key
}

func (s *fakeS3) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://bucket.example/")
}

type sentMail struct {
	to, subject, body string
}

func recipeWith(userID uuid.UUID, title string, ingredients ...entities.RecipeIngredient) *entities.Recipe {
	recipe := &entities.Recipe{ID: uuid.New(), UserID: userID, Title: title}
	for i, ing := range ingredients {
		ing.ID = uuid.New()
		ing.RecipeID = recipe.ID
		ing.SortOrder = i
		recipe.Ingredients = append(recipe.Ingredients, ing)
	}
	return recipe
}

func ingredient(name string, quantity float64, unit string) entities.RecipeIngredient {
	return entities.RecipeIngredient{Name: name, NormalizedName: name, Quantity: quantity, Unit: unit}
}
