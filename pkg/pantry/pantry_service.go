package pantry

import (
	"Recipe-Grocery-Backend/domain"
	"Recipe-Grocery-Backend/entities"
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"strings"
	"time"
)

type (
	PantryService interface {
		AddPantryItem(ctx context.Context, req domain.AddPantryItemRequest, userID string) (domain.PantryItemResponse, error)
		UpdatePantryItem(ctx context.Context, id string, req domain.UpdatePantryItemRequest, userID string) error
		DeletePantryItem(ctx context.Context, id string, userID string) error
		GetPantryItems(ctx context.Context, userID string, page, limit int) ([]domain.PantryItemResponse, int64, error)
	}

	pantryService struct {
		pantryRepository PantryRepository
	}
)

func NewPantryService(pantryRepository PantryRepository) PantryService {
	return &pantryService{
		pantryRepository: pantryRepository,
	}
}

func (s *pantryService) AddPantryItem(ctx context.Context, req domain.AddPantryItemRequest, userID string) (domain.PantryItemResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.PantryItemResponse{}, domain.ErrUnauthorized
	}

	if req.Quantity < 0 {
		return domain.PantryItemResponse{}, domain.ErrInvalidQuantity
	}

	expiryDate, err := parseExpiryDate(req.ExpiryDate)
	if err != nil {
		return domain.PantryItemResponse{}, err
	}

	pantryItem := &entities.PantryItem{
		ID:             uuid.New(),
		UserID:         userUUID,
		Name:           strings.TrimSpace(req.Name),
		NormalizedName: strings.TrimSpace(req.NormalizedName),
		Quantity:       req.Quantity,
		Unit:           strings.TrimSpace(req.Unit),
		Category:       req.Category,
		ExpiryDate:     expiryDate,
	}

	if err := s.pantryRepository.AddPantryItem(ctx, pantryItem); err != nil {
		return domain.PantryItemResponse{}, err
	}

	return toPantryItemResponse(pantryItem), nil
}

func (s *pantryService) UpdatePantryItem(ctx context.Context, id string, req domain.UpdatePantryItemRequest, userID string) error {
	pantryItem, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return err
	}

	if req.Name != "" {
		pantryItem.Name = strings.TrimSpace(req.Name)
	}

	if req.NormalizedName != "" {
		pantryItem.NormalizedName = strings.TrimSpace(req.NormalizedName)
	}

	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return domain.ErrInvalidQuantity
		}
		pantryItem.Quantity = *req.Quantity
	}

	if req.Unit != "" {
		pantryItem.Unit = strings.TrimSpace(req.Unit)
	}

	if req.Category != "" {
		pantryItem.Category = req.Category
	}

	if req.ExpiryDate != "" {
		expiryDate, err := parseExpiryDate(req.ExpiryDate)
		if err != nil {
			return err
		}
		pantryItem.ExpiryDate = expiryDate
	}

	return s.pantryRepository.UpdatePantryItem(ctx, pantryItem)
}

func (s *pantryService) DeletePantryItem(ctx context.Context, id string, userID string) error {
	if _, err := s.getOwnedItem(ctx, id, userID); err != nil {
		return err
	}
	return s.pantryRepository.DeletePantryItem(ctx, id)
}

func (s *pantryService) GetPantryItems(ctx context.Context, userID string, page, limit int) ([]domain.PantryItemResponse, int64, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, 0, domain.ErrUnauthorized
	}

	pantryItems, count, err := s.pantryRepository.GetPantryItems(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.PantryItemResponse, 0, len(pantryItems))
	for _, item := range pantryItems {
		result = append(result, toPantryItemResponse(item))
	}

	return result, count, nil
}

func (s *pantryService) getOwnedItem(ctx context.Context, id string, userID string) (*entities.PantryItem, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrUnauthorized
	}

	pantryItem, err := s.pantryRepository.GetPantryItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPantryItemNotFound
		}
		return nil, err
	}

	if pantryItem.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedPantryAccess
	}

	return pantryItem, nil
}

func parseExpiryDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	expiryDate, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return nil, domain.ErrInvalidExpiryDate
	}
	return &expiryDate, nil
}

func toPantryItemResponse(item *entities.PantryItem) domain.PantryItemResponse {
	return domain.PantryItemResponse{
		ID:             item.ID.String(),
		Name:           item.Name,
		NormalizedName: item.NormalizedName,
		Quantity:       item.Quantity,
		Unit:           item.Unit,
		Category:       item.Category,
		ExpiryDate:     item.ExpiryDate,
		CreatedAt:      item.CreatedAt,
	}
}
