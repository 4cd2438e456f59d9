package mealplan

import (
	"Recipe-Grocery-Backend/entities"
	"context"
	"gorm.io/gorm"
	"time"
)

type (
	MealPlanRepository interface {
		AddEntry(ctx context.Context, entry *entities.MealPlanEntry) error
		GetEntryByID(ctx context.Context, id string) (*entities.MealPlanEntry, error)
		MarkAddedToGroceryList(ctx context.Context, id string) error
		DeleteEntry(ctx context.Context, id string) error
		GetEntriesInRange(ctx context.Context, userID string, from, to time.Time) ([]*entities.MealPlanEntry, error)
	}

	mealPlanRepository struct {
		db *gorm.DB
	}
)

func NewMealPlanRepository(db *gorm.DB) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

func (r *mealPlanRepository) AddEntry(ctx context.Context, entry *entities.MealPlanEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *mealPlanRepository) GetEntryByID(ctx context.Context, id string) (*entities.MealPlanEntry, error) {
	var entry entities.MealPlanEntry
	if err := r.db.WithContext(ctx).Preload("Recipe").Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *mealPlanRepository) MarkAddedToGroceryList(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.MealPlanEntry{}).
		Where("id = ?", id).
		Update("added_to_grocery_list", true).Error
}

func (r *mealPlanRepository) DeleteEntry(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.MealPlanEntry{}).Error
}

// GetEntriesInRange returns entries with from <= scheduled_date <= to.
func (r *mealPlanRepository) GetEntriesInRange(ctx context.Context, userID string, from, to time.Time) ([]*entities.MealPlanEntry, error) {
	var entries []*entities.MealPlanEntry
	if err := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ? AND scheduled_date BETWEEN ? AND ?", userID, from, to).
		Order("scheduled_date asc, created_at asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
