package grocery

import (
	"Recipe-Grocery-Backend/domain"
	"Recipe-Grocery-Backend/entities"
	"Recipe-Grocery-Backend/internal/metrics"
	"Recipe-Grocery-Backend/internal/utils"
	"Recipe-Grocery-Backend/internal/utils/storage"
	"Recipe-Grocery-Backend/pkg/pantry"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultMaxRetries   = 3
	defaultExportPrefix = "exports/grocery"
	emailSubject        = "Your grocery list"
)

type (
	GroceryService interface {
		AddFromRecipe(ctx context.Context, req domain.AddRecipeToGroceryRequest, userID string) (domain.AddRecipeToGroceryResponse, error)
		RemoveRecipeSource(ctx context.Context, req domain.RemoveRecipeSourceRequest, userID string) (domain.RemoveRecipeSourceResponse, error)
		UpdateItem(ctx context.Context, itemID string, req domain.UpdateGroceryItemRequest, userID string) (domain.GroceryListItem, error)
		SetAmazonFreshURL(ctx context.Context, itemID string, req domain.SetAmazonFreshURLRequest, userID string) (domain.GroceryListItem, error)
		RemoveItem(ctx context.Context, itemID string, userID string) error
		ClearAll(ctx context.Context, userID string) (domain.ClearGroceryListResponse, error)
		GetList(ctx context.Context, userID string, includeChecked bool) (domain.GroceryListResponse, error)
		GetGroupedList(ctx context.Context, userID string, includeChecked bool) ([]domain.GroceryCategoryGroup, error)
		GetCount(ctx context.Context, userID string) (domain.GroceryCountResponse, error)
		ExportList(ctx context.Context, userID string) (domain.ExportGroceryListResponse, error)
		DeleteExport(ctx context.Context, req domain.DeleteExportRequest, userID string) error
		EmailList(ctx context.Context, req domain.EmailGroceryListRequest, userID string) error
	}

	// RecipeProvider loads a recipe with its ingredients.
	RecipeProvider interface {
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
	}

	MailSender func(toEmail string, subject string, body string) error

	groceryService struct {
		groceryRepository GroceryRepository
		recipeProvider    RecipeProvider
		pantryReader      pantry.Reader
		s3                storage.AwsS3
		sendMail          MailSender
		maxRetries        int
		exportPrefix      string
		now               func() time.Time
	}
)

func NewGroceryService(
	groceryRepository GroceryRepository,
	recipeProvider RecipeProvider,
	pantryReader pantry.Reader,
	s3 storage.AwsS3,
	sendMail MailSender,
) GroceryService {
	prefix := strings.Trim(utils.GetConfig("EXPORT_PREFIX"), "/")
	if prefix == "" {
		prefix = defaultExportPrefix
	}
	return &groceryService{
		groceryRepository: groceryRepository,
		recipeProvider:    recipeProvider,
		pantryReader:      pantryReader,
		s3:                s3,
		sendMail:          sendMail,
		maxRetries:        utils.GetConfigInt("MERGE_MAX_RETRIES", defaultMaxRetries),
		exportPrefix:      prefix,
		now:               time.Now,
	}
}

// AddFromRecipe merges every non-optional ingredient of a recipe into the
// user's list. Each ingredient is written on its own; when one fails the
// rest are still attempted and the first error is returned.
func (s *groceryService) AddFromRecipe(ctx context.Context, req domain.AddRecipeToGroceryRequest, userID string) (domain.AddRecipeToGroceryResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.AddRecipeToGroceryResponse{}, domain.ErrUnauthorized
	}

	multiplier, err := servingsMultiplier(req.ServingsMultiplier)
	if err != nil {
		return domain.AddRecipeToGroceryResponse{}, err
	}

	var entryID *uuid.UUID
	if req.MealPlanEntryID != "" {
		parsed, err := uuid.Parse(req.MealPlanEntryID)
		if err != nil {
			return domain.AddRecipeToGroceryResponse{}, domain.ErrParseUUID
		}
		entryID = &parsed
	}

	if req.ScheduledDate != "" {
		if _, err := time.Parse(domain.DateLayout, req.ScheduledDate); err != nil {
			return domain.AddRecipeToGroceryResponse{}, domain.ErrInvalidScheduledDate
		}
	}

	recipe, err := s.getRecipe(ctx, req.RecipeID)
	if err != nil {
		return domain.AddRecipeToGroceryResponse{}, err
	}

	var (
		res      domain.AddRecipeToGroceryResponse
		firstErr error
	)
	for _, ing := range recipe.Ingredients {
		normalized := normalizedName(ing)
		if ing.Optional || normalized == "" {
			res.Skipped++
			metrics.SourcesMerged.WithLabelValues(metrics.ResultSkipped).Inc()
			continue
		}

		src := entities.GrocerySource{
			RecipeID:           recipe.ID,
			RecipeName:         recipe.Title,
			Quantity:           ing.Quantity * multiplier,
			Unit:               strings.TrimSpace(ing.Unit),
			ServingsMultiplier: multiplier,
			MealPlanEntryID:    entryID,
			ScheduledDate:      req.ScheduledDate,
		}

		result, err := s.mergeIngredient(ctx, userUUID, normalized, ing, src)
		if err != nil {
			log.Errorf("merge %q from recipe %s for user %s: %v", normalized, recipe.ID, userID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		metrics.SourcesMerged.WithLabelValues(result).Inc()

		switch result {
		case metrics.ResultCreated:
			res.Added++
		case metrics.ResultAppended:
			res.Updated++
		default:
			res.Unchanged++
		}
	}

	return res, firstErr
}

func (s *groceryService) mergeIngredient(
	ctx context.Context,
	userID uuid.UUID,
	normalized string,
	ing entities.RecipeIngredient,
	src entities.GrocerySource,
) (string, error) {
	key := contributionKey(src)

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		item, err := s.groceryRepository.GetItemByNormalizedName(ctx, userID.String(), normalized)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			now := s.now()
			item = &entities.GroceryItem{
				ID:             uuid.New(),
				UserID:         userID,
				Name:           displayName(ing, normalized),
				NormalizedName: normalized,
				Category:       normalizeCategory(ing.Category),
				Unit:           src.Unit,
				TotalQuantity:  src.Quantity,
				Sources:        []entities.GrocerySource{src},
				Version:        1,
				AddedAt:        now,
				UpdatedAt:      now,
			}
			err = s.groceryRepository.CreateItem(ctx, item)
			if errors.Is(err, ErrItemExists) {
				metrics.MergeConflicts.Inc()
				continue
			}
			if err != nil {
				return "", err
			}
			return metrics.ResultCreated, nil
		}
		if err != nil {
			return "", err
		}

		if hasSource(item.Sources, key) {
			return metrics.ResultUnchanged, nil
		}

		sources := make([]entities.GrocerySource, 0, len(item.Sources)+1)
		sources = append(sources, item.Sources...)
		sources = append(sources, src)

		item.Sources = sources
		item.TotalQuantity = sumSources(sources)
		item.Name = displayName(ing, item.Name)
		if normalizeCategory(item.Category) == "" {
			item.Category = normalizeCategory(ing.Category)
		}
		item.UpdatedAt = s.now()

		err = s.groceryRepository.UpdateItemSources(ctx, item)
		if errors.Is(err, ErrVersionConflict) {
			metrics.MergeConflicts.Inc()
			continue
		}
		if err != nil {
			return "", err
		}
		return metrics.ResultAppended, nil
	}

	return "", domain.ErrConcurrentUpdate
}

// RemoveRecipeSource retracts a recipe's contributions. Without a meal plan
// entry id every source of the recipe goes; with one, only that entry's.
func (s *groceryService) RemoveRecipeSource(ctx context.Context, req domain.RemoveRecipeSourceRequest, userID string) (domain.RemoveRecipeSourceResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.RemoveRecipeSourceResponse{}, domain.ErrUnauthorized
	}

	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		return domain.RemoveRecipeSourceResponse{}, domain.ErrParseUUID
	}

	var entryID *uuid.UUID
	if req.MealPlanEntryID != "" {
		parsed, err := uuid.Parse(req.MealPlanEntryID)
		if err != nil {
			return domain.RemoveRecipeSourceResponse{}, domain.ErrParseUUID
		}
		entryID = &parsed
	}
	key := retractionKey(recipeID, entryID)

	items, err := s.groceryRepository.GetItemsByRecipe(ctx, userID, recipeID.String())
	if err != nil {
		return domain.RemoveRecipeSourceResponse{}, err
	}

	var res domain.RemoveRecipeSourceResponse
	for _, item := range items {
		outcome, err := s.retractFromItem(ctx, item, key)
		if err != nil {
			return res, err
		}
		switch outcome {
		case retractDeleted:
			res.Removed++
		case retractUpdated:
			res.Updated++
		}
	}

	return res, nil
}

type retractOutcome int

const (
	retractNone retractOutcome = iota
	retractUpdated
	retractDeleted
)

func (s *groceryService) retractFromItem(ctx context.Context, item *entities.GroceryItem, key sourceKey) (retractOutcome, error) {
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			fresh, err := s.groceryRepository.GetItemByID(ctx, item.ID.String())
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return retractNone, nil
			}
			if err != nil {
				return retractNone, err
			}
			item = fresh
		}

		kept, removed := partitionSources(item.Sources, key)
		if removed == 0 {
			return retractNone, nil
		}

		if len(kept) == 0 {
			err := s.groceryRepository.DeleteItemVersion(ctx, item)
			if errors.Is(err, ErrVersionConflict) {
				metrics.MergeConflicts.Inc()
				continue
			}
			if err != nil {
				return retractNone, err
			}
			metrics.SourcesRemoved.Add(float64(removed))
			metrics.ItemsDeleted.WithLabelValues(metrics.ReasonLastSource).Inc()
			return retractDeleted, nil
		}

		item.Sources = kept
		item.TotalQuantity = sumSources(kept)
		item.Unit = kept[0].Unit
		item.UpdatedAt = s.now()

		err := s.groceryRepository.UpdateItemSources(ctx, item)
		if errors.Is(err, ErrVersionConflict) {
			metrics.MergeConflicts.Inc()
			continue
		}
		if err != nil {
			return retractNone, err
		}
		metrics.SourcesRemoved.Add(float64(removed))
		return retractUpdated, nil
	}

	return retractNone, domain.ErrConcurrentUpdate
}

func (s *groceryService) UpdateItem(ctx context.Context, itemID string, req domain.UpdateGroceryItemRequest, userID string) (domain.GroceryListItem, error) {
	item, err := s.getOwnedItem(ctx, itemID, userID)
	if err != nil {
		return domain.GroceryListItem{}, err
	}

	if req.ClearOverride && req.UserQuantityOverride != nil {
		return domain.GroceryListItem{}, domain.ErrConflictingOverride
	}

	fields := map[string]interface{}{}
	switch {
	case req.ClearOverride:
		fields["user_quantity_override"] = nil
		item.UserQuantityOverride = nil
	case req.UserQuantityOverride != nil:
		override := *req.UserQuantityOverride
		if override < 0 || math.IsNaN(override) || math.IsInf(override, 0) {
			return domain.GroceryListItem{}, domain.ErrInvalidQuantityOverride
		}
		fields["user_quantity_override"] = override
		item.UserQuantityOverride = &override
	}
	if req.IsChecked != nil {
		fields["is_checked"] = *req.IsChecked
		item.IsChecked = *req.IsChecked
	}
	if len(fields) == 0 {
		return domain.GroceryListItem{}, domain.ErrNothingToUpdate
	}

	return s.patchItem(ctx, item, fields)
}

func (s *groceryService) SetAmazonFreshURL(ctx context.Context, itemID string, req domain.SetAmazonFreshURLRequest, userID string) (domain.GroceryListItem, error) {
	item, err := s.getOwnedItem(ctx, itemID, userID)
	if err != nil {
		return domain.GroceryListItem{}, err
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		return domain.GroceryListItem{}, domain.ErrInvalidInput
	}
	item.AmazonFreshURL = &url

	return s.patchItem(ctx, item, map[string]interface{}{"amazon_fresh_url": url})
}

// patchItem writes user-owned columns only. Sources and totals are left to
// the versioned merge path so the two never overwrite each other.
func (s *groceryService) patchItem(ctx context.Context, item *entities.GroceryItem, fields map[string]interface{}) (domain.GroceryListItem, error) {
	item.UpdatedAt = s.now()
	fields["updated_at"] = item.UpdatedAt

	if err := s.groceryRepository.UpdateItemFields(ctx, item.ID.String(), fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.GroceryListItem{}, domain.ErrGroceryItemNotFound
		}
		return domain.GroceryListItem{}, err
	}

	snapshot, err := pantry.LoadSnapshot(ctx, s.pantryReader, item.UserID.String())
	if err != nil {
		return domain.GroceryListItem{}, err
	}
	return projectItem(item, snapshot), nil
}

func (s *groceryService) RemoveItem(ctx context.Context, itemID string, userID string) error {
	item, err := s.getOwnedItem(ctx, itemID, userID)
	if err != nil {
		return err
	}

	if err := s.groceryRepository.DeleteItem(ctx, item.ID.String()); err != nil {
		return err
	}
	metrics.ItemsDeleted.WithLabelValues(metrics.ReasonUser).Inc()
	return nil
}

func (s *groceryService) ClearAll(ctx context.Context, userID string) (domain.ClearGroceryListResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.ClearGroceryListResponse{}, domain.ErrUnauthorized
	}

	deleted, err := s.groceryRepository.DeleteItemsByUser(ctx, userID)
	if err != nil {
		return domain.ClearGroceryListResponse{}, err
	}
	metrics.ItemsDeleted.WithLabelValues(metrics.ReasonClearAll).Add(float64(deleted))

	return domain.ClearGroceryListResponse{Deleted: deleted}, nil
}

func (s *groceryService) GetList(ctx context.Context, userID string, includeChecked bool) (domain.GroceryListResponse, error) {
	items, err := s.projectedList(ctx, userID, includeChecked)
	if err != nil {
		return domain.GroceryListResponse{}, err
	}
	return domain.GroceryListResponse{Items: items, Total: len(items)}, nil
}

func (s *groceryService) GetGroupedList(ctx context.Context, userID string, includeChecked bool) ([]domain.GroceryCategoryGroup, error) {
	items, err := s.projectedList(ctx, userID, includeChecked)
	if err != nil {
		return nil, err
	}
	return GroupByCategory(items), nil
}

func (s *groceryService) GetCount(ctx context.Context, userID string) (domain.GroceryCountResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.GroceryCountResponse{}, domain.ErrUnauthorized
	}

	count, err := s.groceryRepository.CountUnchecked(ctx, userID)
	if err != nil {
		return domain.GroceryCountResponse{}, err
	}
	return domain.GroceryCountResponse{Count: count}, nil
}

// ExportList uploads the whole list, checked items included, as an xlsx
// workbook and returns its public link.
func (s *groceryService) ExportList(ctx context.Context, userID string) (domain.ExportGroceryListResponse, error) {
	items, err := s.projectedList(ctx, userID, true)
	if err != nil {
		return domain.ExportGroceryListResponse{}, err
	}
	if len(items) == 0 {
		return domain.ExportGroceryListResponse{}, domain.ErrEmptyGroceryList
	}

	data, err := RenderWorkbook(items)
	if err != nil {
		return domain.ExportGroceryListResponse{}, fmt.Errorf("render workbook: %w", err)
	}

	key := fmt.Sprintf("%s/%s/%s.xlsx", s.exportPrefix, userID, s.now().UTC().Format("20060102T150405Z"))
	key, err = s.s3.UploadObject(ctx, key, data, storage.ContentTypeXLSX)
	if err != nil {
		return domain.ExportGroceryListResponse{}, err
	}
	log.Infof("grocery list for user %s exported to %s", userID, key)

	return domain.ExportGroceryListResponse{
		URL:       s.s3.GetPublicLinkKey(key),
		ItemCount: len(items),
	}, nil
}

// DeleteExport removes a workbook uploaded by ExportList. Only links under
// the caller's own export folder are accepted.
func (s *groceryService) DeleteExport(ctx context.Context, req domain.DeleteExportRequest, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.ErrUnauthorized
	}

	key := s.s3.GetObjectKeyFromLink(strings.TrimSpace(req.URL))
	if !strings.HasPrefix(key, s.exportPrefix+"/"+userID+"/") || strings.Contains(key, "..") {
		return domain.ErrUnauthorizedExportAccess
	}

	if err := s.s3.DeleteFile(ctx, key); err != nil {
		return fmt.Errorf("delete export %s: %w", key, err)
	}
	log.Infof("grocery export %s deleted", key)
	return nil
}

// EmailList sends the unchecked items, grouped by category.
func (s *groceryService) EmailList(ctx context.Context, req domain.EmailGroceryListRequest, userID string) error {
	items, err := s.projectedList(ctx, userID, false)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return domain.ErrEmptyGroceryList
	}

	body, err := RenderEmailBody(items)
	if err != nil {
		return fmt.Errorf("render email: %w", err)
	}
	return s.sendMail(req.Email, emailSubject, body)
}

func (s *groceryService) projectedList(ctx context.Context, userID string, includeChecked bool) ([]domain.GroceryListItem, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrUnauthorized
	}

	items, err := s.groceryRepository.GetItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot, err := pantry.LoadSnapshot(ctx, s.pantryReader, userID)
	if err != nil {
		return nil, err
	}

	return ProjectList(items, snapshot, includeChecked), nil
}

func (s *groceryService) getRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeProvider.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *groceryService) getOwnedItem(ctx context.Context, itemID string, userID string) (*entities.GroceryItem, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if _, err := uuid.Parse(itemID); err != nil {
		return nil, domain.ErrGroceryItemNotFound
	}

	item, err := s.groceryRepository.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGroceryItemNotFound
		}
		return nil, err
	}

	if item.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedGroceryAccess
	}
	return item, nil
}

// servingsMultiplier treats zero as "not given".
func servingsMultiplier(m float64) (float64, error) {
	if m == 0 {
		return 1, nil
	}
	if m < 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return 0, domain.ErrInvalidServingsMultiplier
	}
	return m, nil
}

func normalizedName(ing entities.RecipeIngredient) string {
	if n := strings.TrimSpace(ing.NormalizedName); n != "" {
		return n
	}
	return strings.ToLower(strings.TrimSpace(ing.Name))
}

func displayName(ing entities.RecipeIngredient, fallback string) string {
	if n := strings.TrimSpace(ing.Name); n != "" {
		return n
	}
	return fallback
}
