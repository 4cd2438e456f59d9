package pantry

import (
	"Recipe-Grocery-Backend/domain"
	"Recipe-Grocery-Backend/entities"
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakePantryRepository struct {
	items map[uuid.UUID]*entities.PantryItem
}

func newFakePantryRepository() *fakePantryRepository {
	return &fakePantryRepository{items: map[uuid.UUID]*entities.PantryItem{}}
}

func (r *fakePantryRepository) AddPantryItem(ctx context.Context, item *entities.PantryItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakePantryRepository) GetPantryItemByID(ctx context.Context, id string) (*entities.PantryItem, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	item, ok := r.items[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *fakePantryRepository) UpdatePantryItem(ctx context.Context, item *entities.PantryItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakePantryRepository) DeletePantryItem(ctx context.Context, id string) error {
	delete(r.items, uuid.MustParse(id))
	return nil
}

func (r *fakePantryRepository) GetPantryItems(ctx context.Context, userID string, page, limit int) ([]*entities.PantryItem, int64, error) {
	all, _ := r.GetAllPantryItems(ctx, userID)
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := int64(len(all))
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakePantryRepository) GetAllPantryItems(ctx context.Context, userID string) ([]*entities.PantryItem, error) {
	var out []*entities.PantryItem
	for _, item := range r.items {
		if item.UserID.String() == userID {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func TestAddPantryItem(t *testing.T) {
	repo := newFakePantryRepository()
	svc := NewPantryService(repo)
	userID := uuid.NewString()

	res, err := svc.AddPantryItem(context.Background(), domain.AddPantryItemRequest{
		Name:           "Whole milk",
		NormalizedName: "milk",
		Quantity:       1,
		Unit:           "cup",
		ExpiryDate:     "2026-11-01",
	}, userID)
	require.NoError(t, err)
	assert.Equal(t, "milk", res.NormalizedName)
	require.NotNil(t, res.ExpiryDate)
	assert.Equal(t, 2026, res.ExpiryDate.Year())
	assert.Len(t, repo.items, 1)
}

func TestAddPantryItemRejectsBadInput(t *testing.T) {
	svc := NewPantryService(newFakePantryRepository())

	_, err := svc.AddPantryItem(context.Background(), domain.AddPantryItemRequest{Name: "milk", NormalizedName: "milk", Unit: "cup"}, "not-a-user")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.AddPantryItem(context.Background(), domain.AddPantryItemRequest{Name: "milk", NormalizedName: "milk", Unit: "cup", Quantity: -1}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.AddPantryItem(context.Background(), domain.AddPantryItemRequest{Name: "milk", NormalizedName: "milk", Unit: "cup", ExpiryDate: "01/11/2026"}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrInvalidExpiryDate)
}

func TestUpdateAndDeletePantryItemOwnership(t *testing.T) {
	repo := newFakePantryRepository()
	svc := NewPantryService(repo)
	owner := uuid.NewString()
	other := uuid.NewString()

	res, err := svc.AddPantryItem(context.Background(), domain.AddPantryItemRequest{Name: "Eggs", NormalizedName: "eggs", Unit: "piece", Quantity: 6}, owner)
	require.NoError(t, err)

	qty := 4.0
	err = svc.UpdatePantryItem(context.Background(), res.ID, domain.UpdatePantryItemRequest{Quantity: &qty}, other)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.UpdatePantryItem(context.Background(), res.ID, domain.UpdatePantryItemRequest{Quantity: &qty, Unit: "Piece"}, owner)
	require.NoError(t, err)
	stored := repo.items[uuid.MustParse(res.ID)]
	assert.Equal(t, 4.0, stored.Quantity)
	assert.Equal(t, "Piece", stored.Unit)

	err = svc.DeletePantryItem(context.Background(), res.ID, other)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedPantryAccess)

	err = svc.DeletePantryItem(context.Background(), uuid.NewString(), owner)
	assert.ErrorIs(t, err, domain.ErrPantryItemNotFound)

	require.NoError(t, svc.DeletePantryItem(context.Background(), res.ID, owner))
	assert.Empty(t, repo.items)
}

func TestGetPantryItemsPaginates(t *testing.T) {
	repo := newFakePantryRepository()
	svc := NewPantryService(repo)
	userID := uuid.NewString()

	for _, name := range []string{"rice", "butter", "onion"} {
		_, err := svc.AddPantryItem(context.Background(), domain.AddPantryItemRequest{Name: name, NormalizedName: name, Unit: "g", Quantity: 100}, userID)
		require.NoError(t, err)
	}

	items, total, err := svc.GetPantryItems(context.Background(), userID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 2)
	assert.Equal(t, "butter", items[0].Name)
	assert.Equal(t, "onion", items[1].Name)
}
