package grocery

import (
	"Recipe-Grocery-Backend/entities"
	"context"
	"encoding/json"
	"errors"
	"gorm.io/gorm"
)

var (
	// ErrVersionConflict means the row changed between read and write.
	ErrVersionConflict = errors.New("grocery item version conflict")
	// ErrItemExists means another writer created the (user, normalized name) row first.
	ErrItemExists = errors.New("grocery item already exists")
)

type (
	GroceryRepository interface {
		GetItemByID(ctx context.Context, id string) (*entities.GroceryItem, error)
		GetItemByNormalizedName(ctx context.Context, userID, normalizedName string) (*entities.GroceryItem, error)
		GetItemsByUser(ctx context.Context, userID string) ([]*entities.GroceryItem, error)
		GetItemsByRecipe(ctx context.Context, userID, recipeID string) ([]*entities.GroceryItem, error)
		CreateItem(ctx context.Context, item *entities.GroceryItem) error
		UpdateItemSources(ctx context.Context, item *entities.GroceryItem) error
		DeleteItemVersion(ctx context.Context, item *entities.GroceryItem) error
		UpdateItemFields(ctx context.Context, id string, fields map[string]interface{}) error
		DeleteItem(ctx context.Context, id string) error
		DeleteItemsByUser(ctx context.Context, userID string) (int64, error)
		CountUnchecked(ctx context.Context, userID string) (int64, error)
	}

	groceryRepository struct {
		db *gorm.DB
	}
)

func NewGroceryRepository(db *gorm.DB) GroceryRepository {
	return &groceryRepository{db: db}
}

func (r *groceryRepository) GetItemByID(ctx context.Context, id string) (*entities.GroceryItem, error) {
	var item entities.GroceryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *groceryRepository) GetItemByNormalizedName(ctx context.Context, userID, normalizedName string) (*entities.GroceryItem, error) {
	var item entities.GroceryItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND normalized_name = ?", userID, normalizedName).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *groceryRepository) GetItemsByUser(ctx context.Context, userID string) ([]*entities.GroceryItem, error) {
	var items []*entities.GroceryItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItemsByRecipe narrows the scan to items holding at least one source of
// the recipe, using jsonb containment on the sources column.
func (r *groceryRepository) GetItemsByRecipe(ctx context.Context, userID, recipeID string) ([]*entities.GroceryItem, error) {
	filter, err := json.Marshal([]map[string]string{{"recipe_id": recipeID}})
	if err != nil {
		return nil, err
	}

	var items []*entities.GroceryItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND sources @> ?::jsonb", userID, string(filter)).
		Order("added_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *groceryRepository) CreateItem(ctx context.Context, item *entities.GroceryItem) error {
	if item.Version == 0 {
		item.Version = 1
	}
	err := r.db.WithContext(ctx).Create(item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrItemExists
	}
	return err
}

// UpdateItemSources writes the aggregate columns only if the row still has
// the version that was read, then advances item.Version.
func (r *groceryRepository) UpdateItemSources(ctx context.Context, item *entities.GroceryItem) error {
	res := r.db.WithContext(ctx).
		Model(&entities.GroceryItem{}).
		Where("id = ? AND version = ?", item.ID, item.Version).
		Updates(map[string]interface{}{
			"name":           item.Name,
			"category":       item.Category,
			"unit":           item.Unit,
			"total_quantity": item.TotalQuantity,
			"sources":        item.Sources,
			"version":        item.Version + 1,
			"updated_at":     item.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	item.Version++
	return nil
}

func (r *groceryRepository) DeleteItemVersion(ctx context.Context, item *entities.GroceryItem) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", item.ID, item.Version).
		Delete(&entities.GroceryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *groceryRepository) UpdateItemFields(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&entities.GroceryItem{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *groceryRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.GroceryItem{}).Error
}

func (r *groceryRepository) DeleteItemsByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entities.GroceryItem{})
	return res.RowsAffected, res.Error
}

func (r *groceryRepository) CountUnchecked(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.GroceryItem{}).
		Where("user_id = ? AND is_checked = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
