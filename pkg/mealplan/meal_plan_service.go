package mealplan

import (
	"Recipe-Grocery-Backend/domain"
	"Recipe-Grocery-Backend/entities"
	"context"
	"errors"
	"math"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// defaultRangeDays is the window ListEntries covers when no end date is given.
const defaultRangeDays = 7

type (
	MealPlanService interface {
		AddEntry(ctx context.Context, req domain.AddMealPlanEntryRequest, userID string) (domain.MealPlanEntryResponse, error)
		RemoveEntry(ctx context.Context, entryID string, userID string) (domain.DeleteMealPlanEntryResponse, error)
		ListEntries(ctx context.Context, from, to string, userID string) ([]domain.MealPlanEntryResponse, error)
	}

	RecipeProvider interface {
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
	}

	// GroceryList is the part of the grocery service a meal plan drives.
	GroceryList interface {
		AddFromRecipe(ctx context.Context, req domain.AddRecipeToGroceryRequest, userID string) (domain.AddRecipeToGroceryResponse, error)
		RemoveRecipeSource(ctx context.Context, req domain.RemoveRecipeSourceRequest, userID string) (domain.RemoveRecipeSourceResponse, error)
	}

	mealPlanService struct {
		mealPlanRepository MealPlanRepository
		recipeProvider     RecipeProvider
		groceryList        GroceryList
		now                func() time.Time
	}
)

func NewMealPlanService(mealPlanRepository MealPlanRepository, recipeProvider RecipeProvider, groceryList GroceryList) MealPlanService {
	return &mealPlanService{
		mealPlanRepository: mealPlanRepository,
		recipeProvider:     recipeProvider,
		groceryList:        groceryList,
		now:                time.Now,
	}
}

func (s *mealPlanService) AddEntry(ctx context.Context, req domain.AddMealPlanEntryRequest, userID string) (domain.MealPlanEntryResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.MealPlanEntryResponse{}, domain.ErrUnauthorized
	}

	scheduled, err := time.Parse(domain.DateLayout, req.ScheduledDate)
	if err != nil {
		return domain.MealPlanEntryResponse{}, domain.ErrInvalidScheduledDate
	}

	multiplier := req.ServingsMultiplier
	if multiplier == 0 {
		multiplier = 1
	}
	if multiplier < 0 || math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		return domain.MealPlanEntryResponse{}, domain.ErrInvalidServingsMultiplier
	}

	recipeUUID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		return domain.MealPlanEntryResponse{}, domain.ErrRecipeNotFound
	}
	recipe, err := s.recipeProvider.GetRecipeByID(ctx, req.RecipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MealPlanEntryResponse{}, domain.ErrRecipeNotFound
		}
		return domain.MealPlanEntryResponse{}, err
	}

	now := s.now()
	entry := &entities.MealPlanEntry{
		ID:                 uuid.New(),
		UserID:             userUUID,
		RecipeID:           recipeUUID,
		ScheduledDate:      scheduled,
		MealType:           req.MealType,
		ServingsMultiplier: multiplier,
		Timestamp:          entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.mealPlanRepository.AddEntry(ctx, entry); err != nil {
		return domain.MealPlanEntryResponse{}, err
	}
	entry.Recipe = recipe

	res := toMealPlanEntryResponse(entry)
	if !req.AddToGroceryList {
		return res, nil
	}

	grocery, err := s.groceryList.AddFromRecipe(ctx, domain.AddRecipeToGroceryRequest{
		RecipeID:           req.RecipeID,
		ServingsMultiplier: multiplier,
		MealPlanEntryID:    entry.ID.String(),
		ScheduledDate:      req.ScheduledDate,
	}, userID)
	if err != nil {
		log.Errorf("meal plan entry %s saved but grocery merge failed: %v", entry.ID, err)
		return res, err
	}

	if err := s.mealPlanRepository.MarkAddedToGroceryList(ctx, entry.ID.String()); err != nil {
		return res, err
	}
	res.AddedToGroceryList = true
	res.Grocery = &grocery

	return res, nil
}

// RemoveEntry deletes the entry and retracts exactly its grocery sources.
func (s *mealPlanService) RemoveEntry(ctx context.Context, entryID string, userID string) (domain.DeleteMealPlanEntryResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.DeleteMealPlanEntryResponse{}, domain.ErrUnauthorized
	}
	if _, err := uuid.Parse(entryID); err != nil {
		return domain.DeleteMealPlanEntryResponse{}, domain.ErrMealPlanEntryNotFound
	}

	entry, err := s.mealPlanRepository.GetEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DeleteMealPlanEntryResponse{}, domain.ErrMealPlanEntryNotFound
		}
		return domain.DeleteMealPlanEntryResponse{}, err
	}

	if entry.UserID.String() != userID {
		return domain.DeleteMealPlanEntryResponse{}, domain.ErrUnauthorizedMealPlanAccess
	}

	// The entry outlives a failed retraction so the call can be repeated.
	grocery, err := s.groceryList.RemoveRecipeSource(ctx, domain.RemoveRecipeSourceRequest{
		RecipeID:        entry.RecipeID.String(),
		MealPlanEntryID: entryID,
	}, userID)
	if err != nil {
		return domain.DeleteMealPlanEntryResponse{}, err
	}

	if err := s.mealPlanRepository.DeleteEntry(ctx, entryID); err != nil {
		return domain.DeleteMealPlanEntryResponse{}, err
	}

	return domain.DeleteMealPlanEntryResponse{Grocery: grocery}, nil
}

func (s *mealPlanService) ListEntries(ctx context.Context, from, to string, userID string) ([]domain.MealPlanEntryResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrUnauthorized
	}

	fromDate, toDate, err := s.dateRange(from, to)
	if err != nil {
		return nil, err
	}

	entries, err := s.mealPlanRepository.GetEntriesInRange(ctx, userID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	res := make([]domain.MealPlanEntryResponse, 0, len(entries))
	for _, entry := range entries {
		res = append(res, toMealPlanEntryResponse(entry))
	}
	return res, nil
}

// dateRange defaults to a week starting today.
func (s *mealPlanService) dateRange(from, to string) (time.Time, time.Time, error) {
	var fromDate time.Time
	if from == "" {
		today := s.now().UTC()
		fromDate = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		parsed, err := time.Parse(domain.DateLayout, from)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
		}
		fromDate = parsed
	}

	toDate := fromDate.AddDate(0, 0, defaultRangeDays-1)
	if to != "" {
		parsed, err := time.Parse(domain.DateLayout, to)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
		}
		toDate = parsed
	}

	if toDate.Before(fromDate) {
		return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
	}
	return fromDate, toDate, nil
}

func toMealPlanEntryResponse(entry *entities.MealPlanEntry) domain.MealPlanEntryResponse {
	res := domain.MealPlanEntryResponse{
		ID:                 entry.ID.String(),
		RecipeID:           entry.RecipeID.String(),
		ScheduledDate:      entry.ScheduledDate.Format(domain.DateLayout),
		MealType:           entry.MealType,
		ServingsMultiplier: entry.ServingsMultiplier,
		AddedToGroceryList: entry.AddedToGroceryList,
		CreatedAt:          entry.CreatedAt,
	}
	if entry.Recipe != nil {
		res.RecipeTitle = entry.Recipe.Title
	}
	return res
}
