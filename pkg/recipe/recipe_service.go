package recipe

import (
	"Recipe-Grocery-Backend/domain"
	"Recipe-Grocery-Backend/entities"
	"context"
	"errors"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"strings"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error)
		GetRecipes(ctx context.Context, page, limit int, userID string) ([]domain.Recipe, int64, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
	}

	// SourceRetractor removes a recipe's contributions from a grocery list.
	SourceRetractor interface {
		RemoveRecipeSource(ctx context.Context, req domain.RemoveRecipeSourceRequest, userID string) (domain.RemoveRecipeSourceResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		groceryList      SourceRetractor
	}
)

func NewRecipeService(recipeRepository RecipeRepository, groceryList SourceRetractor) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		groceryList:      groceryList,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetail{}, domain.ErrUnauthorized
	}

	servings := req.Servings
	if servings == 0 {
		servings = 1
	}

	recipe := &entities.Recipe{
		ID:              uuid.New(),
		UserID:          userUUID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        servings,
		Difficulty:      req.Difficulty,
		CuisineType:     req.CuisineType,
		SourceURL:       req.SourceURL,
	}

	for i, ing := range req.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, entities.RecipeIngredient{
			ID:             uuid.New(),
			RecipeID:       recipe.ID,
			RawText:        ing.RawText,
			Name:           strings.TrimSpace(ing.Name),
			NormalizedName: strings.TrimSpace(ing.NormalizedName),
			Quantity:       ing.Quantity,
			Unit:           strings.TrimSpace(ing.Unit),
			Preparation:    ing.Preparation,
			Category:       ing.Category,
			Optional:       ing.Optional,
			SortOrder:      i,
		})
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetail{}, err
	}

	return toRecipeDetail(recipe), nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeDetail, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.RecipeDetail{}, domain.ErrUnauthorized
	}

	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	return toRecipeDetail(recipe), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, page, limit int, userID string) ([]domain.Recipe, int64, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, 0, domain.ErrUnauthorized
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, toRecipe(recipe))
	}

	return result, count, nil
}

// DeleteRecipe removes the recipe and retracts it from the owner's grocery
// list. Other users keep their sources until they remove them.
func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.ErrUnauthorized
	}

	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return err
	}

	if recipe.UserID.String() != userID {
		return domain.ErrUnauthorizedRecipeAccess
	}

	planners, err := s.recipeRepository.GetPlannerUserIDs(ctx, recipeID)
	if err != nil {
		return err
	}

	// Lists are retracted before the recipe and its entries are deleted.
	for _, listOwner := range affectedUsers(userID, planners) {
		res, err := s.groceryList.RemoveRecipeSource(ctx, domain.RemoveRecipeSourceRequest{RecipeID: recipeID}, listOwner)
		if err != nil {
			return err
		}
		log.Infof("recipe %s retracted for user %s, grocery items removed=%d updated=%d", recipeID, listOwner, res.Removed, res.Updated)
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func affectedUsers(owner string, planners []string) []string {
	users := []string{owner}
	for _, id := range planners {
		if !strings.EqualFold(id, owner) {
			users = append(users, id)
		}
	}
	return users
}

func (s *recipeService) getRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func toRecipe(recipe *entities.Recipe) domain.Recipe {
	return domain.Recipe{
		ID:              recipe.ID.String(),
		Title:           recipe.Title,
		Description:     recipe.Description,
		ImageURL:        recipe.ImageURL,
		PrepTimeMinutes: recipe.PrepTimeMinutes,
		CookTimeMinutes: recipe.CookTimeMinutes,
		Servings:        recipe.Servings,
		Difficulty:      recipe.Difficulty,
		CuisineType:     recipe.CuisineType,
		CreatedAt:       recipe.CreatedAt,
	}
}

func toRecipeDetail(recipe *entities.Recipe) domain.RecipeDetail {
	ingredients := make([]domain.Ingredient, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		ingredients = append(ingredients, domain.Ingredient{
			Name:           ing.Name,
			NormalizedName: ing.NormalizedName,
			Quantity:       ing.Quantity,
			Unit:           ing.Unit,
			Preparation:    ing.Preparation,
			Category:       ing.Category,
			Optional:       ing.Optional,
		})
	}

	return domain.RecipeDetail{
		Recipe:      toRecipe(recipe),
		SourceURL:   recipe.SourceURL,
		Ingredients: ingredients,
	}
}
