package pantry

import (
	"Recipe-Grocery-Backend/entities"
	"context"
	"errors"
	"gorm.io/gorm"
)

type (
	PantryRepository interface {
		AddPantryItem(ctx context.Context, pantryItem *entities.PantryItem) error
		GetPantryItemByID(ctx context.Context, id string) (*entities.PantryItem, error)
		UpdatePantryItem(ctx context.Context, pantryItem *entities.PantryItem) error
		DeletePantryItem(ctx context.Context, id string) error
		GetPantryItems(ctx context.Context, userID string, page, limit int) ([]*entities.PantryItem, int64, error)
		GetAllPantryItems(ctx context.Context, userID string) ([]*entities.PantryItem, error)
	}

	pantryRepository struct {
		db *gorm.DB
	}
)

func NewPantryRepository(db *gorm.DB) PantryRepository {
	return &pantryRepository{db: db}
}

func (r *pantryRepository) AddPantryItem(ctx context.Context, pantryItem *entities.PantryItem) error {
	return r.db.WithContext(ctx).Create(pantryItem).Error
}

func (r *pantryRepository) GetPantryItemByID(ctx context.Context, id string) (*entities.PantryItem, error) {
	var pantryItem entities.PantryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pantryItem).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, err
	}
	return &pantryItem, nil
}

func (r *pantryRepository) UpdatePantryItem(ctx context.Context, pantryItem *entities.PantryItem) error {
	return r.db.WithContext(ctx).Save(pantryItem).Error
}

func (r *pantryRepository) DeletePantryItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.PantryItem{}).Error
}

func (r *pantryRepository) GetPantryItems(ctx context.Context, userID string, page, limit int) ([]*entities.PantryItem, int64, error) {
	var pantryItems []*entities.PantryItem
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.PantryItem{}).Where("user_id = ?", userID)

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("name asc").Find(&pantryItems).Error; err != nil {
		return nil, 0, err
	}

	return pantryItems, count, nil
}

// GetAllPantryItems returns the unpaginated pantry, oldest first, for
// snapshot building.
func (r *pantryRepository) GetAllPantryItems(ctx context.Context, userID string) ([]*entities.PantryItem, error) {
	var pantryItems []*entities.PantryItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&pantryItems).Error; err != nil {
		return nil, err
	}
	return pantryItems, nil
}
