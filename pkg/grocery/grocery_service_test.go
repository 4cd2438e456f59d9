package grocery

import (
	"Recipe-Grocery-Backend/domain"
	"Recipe-Grocery-Backend/entities"
	"Recipe-Grocery-Backend/internal/metrics"
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	svc     *groceryService
	repo    *fakeGroceryRepository
	recipes fakeRecipeProvider
	s3      *fakeS3
	mails   []sentMail
	userID  uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		repo:    newFakeGroceryRepository(),
		recipes: fakeRecipeProvider{},
		s3:      newFakeS3(),
		userID:  uuid.New(),
	}
	svc := NewGroceryService(env.repo, env.recipes, fakePantryReader(nil), env.s3,
		func(to, subject, body string) error {
			env.mails = append(env.mails, sentMail{to: to, subject: subject, body: body})
			return nil
		},
	).(*groceryService)
	svc.maxRetries = 3
	env.svc = svc
	return env
}

func (e *testEnv) addRecipe(r *entities.Recipe) *entities.Recipe {
	e.recipes[r.ID] = r
	return r
}

func (e *testEnv) setPantry(items ...*entities.PantryItem) {
	for _, item := range items {
		item.UserID = e.userID
	}
	e.svc.pantryReader = fakePantryReader(items)
}

func (e *testEnv) add(t *testing.T, recipe *entities.Recipe, multiplier float64, entryID *uuid.UUID) domain.AddRecipeToGroceryResponse {
	t.Helper()
	req := domain.AddRecipeToGroceryRequest{RecipeID: recipe.ID.String(), ServingsMultiplier: multiplier}
	if entryID != nil {
		req.MealPlanEntryID = entryID.String()
		req.ScheduledDate = "2026-03-01"
	}
	res, err := e.svc.AddFromRecipe(context.Background(), req, e.userID.String())
	require.NoError(t, err)
	return res
}

func (e *testEnv) remove(t *testing.T, recipe *entities.Recipe, entryID *uuid.UUID) domain.RemoveRecipeSourceResponse {
	t.Helper()
	req := domain.RemoveRecipeSourceRequest{RecipeID: recipe.ID.String()}
	if entryID != nil {
		req.MealPlanEntryID = entryID.String()
	}
	res, err := e.svc.RemoveRecipeSource(context.Background(), req, e.userID.String())
	require.NoError(t, err)
	return res
}

func (e *testEnv) assertTotalsMatchSources(t *testing.T) {
	t.Helper()
	items, err := e.repo.GetItemsByUser(context.Background(), e.userID.String())
	require.NoError(t, err)
	for _, item := range items {
		assert.NotEmpty(t, item.Sources, item.NormalizedName)
		assert.InDelta(t, sumSources(item.Sources), item.TotalQuantity, 1e-9, item.NormalizedName)
	}
}

func TestFlourAcrossTwoRecipes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	recipeA := env.addRecipe(recipeWith(env.userID, "Bread", ingredient("flour", 200, "g")))
	recipeB := env.addRecipe(recipeWith(env.userID, "Pancakes", ingredient("flour", 100, "g")))

	res := env.add(t, recipeA, 2, nil)
	assert.Equal(t, 1, res.Added)
	flour := env.repo.byName(env.userID, "flour")
	require.NotNil(t, flour)
	assert.Equal(t, 400.0, flour.TotalQuantity)
	require.Len(t, flour.Sources, 1)
	assert.Equal(t, recipeA.ID, flour.Sources[0].RecipeID)
	assert.Equal(t, 400.0, flour.Sources[0].Quantity)
	assert.Equal(t, "Bread", flour.Sources[0].RecipeName)

	res = env.add(t, recipeB, 1, nil)
	assert.Equal(t, 1, res.Updated)
	flour = env.repo.byName(env.userID, "flour")
	assert.Equal(t, 500.0, flour.TotalQuantity)
	assert.Len(t, flour.Sources, 2)

	removed := env.remove(t, recipeA, nil)
	assert.Equal(t, domain.RemoveRecipeSourceResponse{Updated: 1}, removed)
	flour = env.repo.byName(env.userID, "flour")
	assert.Equal(t, 100.0, flour.TotalQuantity)
	require.Len(t, flour.Sources, 1)
	assert.Equal(t, recipeB.ID, flour.Sources[0].RecipeID)

	removed = env.remove(t, recipeB, nil)
	assert.Equal(t, domain.RemoveRecipeSourceResponse{Removed: 1}, removed)
	assert.Nil(t, env.repo.byName(env.userID, "flour"))

	list, err := env.svc.GetList(ctx, env.userID.String(), true)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestEggsFromTwoMealPlanEntries(t *testing.T) {
	env := newTestEnv(t)
	recipe := env.addRecipe(recipeWith(env.userID, "Omelette", ingredient("eggs", 3, "")))
	monday, tuesday := uuid.New(), uuid.New()

	env.add(t, recipe, 1, &monday)
	env.add(t, recipe, 2, &tuesday)

	eggs := env.repo.byName(env.userID, "eggs")
	require.NotNil(t, eggs)
	assert.Len(t, eggs.Sources, 2)
	assert.Equal(t, 9.0, eggs.TotalQuantity)

	res := env.remove(t, recipe, &monday)
	assert.Equal(t, 1, res.Updated)

	eggs = env.repo.byName(env.userID, "eggs")
	require.Len(t, eggs.Sources, 1)
	require.NotNil(t, eggs.Sources[0].MealPlanEntryID)
	assert.Equal(t, tuesday, *eggs.Sources[0].MealPlanEntryID)
	assert.Equal(t, 6.0, eggs.TotalQuantity)
}

func TestAddFromRecipeIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	entry := uuid.New()
	recipe := env.addRecipe(recipeWith(env.userID, "Soup",
		ingredient("carrot", 2, "pcs"),
		ingredient("onion", 1, "pcs"),
	))

	env.add(t, recipe, 1.5, &entry)
	before, err := env.repo.GetItemsByUser(context.Background(), env.userID.String())
	require.NoError(t, err)

	res := env.add(t, recipe, 1.5, &entry)
	assert.Equal(t, domain.AddRecipeToGroceryResponse{Unchanged: 2}, res)

	after, err := env.repo.GetItemsByUser(context.Background(), env.userID.String())
	require.NoError(t, err)
	assert.ElementsMatch(t, before, after)
}

func TestAddFromRecipeDirectAndPlannedAreDistinct(t *testing.T) {
	env := newTestEnv(t)
	entry := uuid.New()
	recipe := env.addRecipe(recipeWith(env.userID, "Curry", ingredient("rice", 1, "cup")))

	env.add(t, recipe, 1, nil)
	env.add(t, recipe, 1, &entry)

	rice := env.repo.byName(env.userID, "rice")
	assert.Len(t, rice.Sources, 2)
	assert.Equal(t, 2.0, rice.TotalQuantity)

	res := env.remove(t, recipe, nil)
	assert.Equal(t, 1, res.Removed)
	assert.Nil(t, env.repo.byName(env.userID, "rice"))
}

func TestAddFromRecipeSkipsOptionalIngredients(t *testing.T) {
	env := newTestEnv(t)
	garnish := ingredient("parsley", 1, "bunch")
	garnish.Optional = true
	recipe := env.addRecipe(recipeWith(env.userID, "Stew", ingredient("beef", 500, "g"), garnish))

	res := env.add(t, recipe, 0, nil)
	assert.Equal(t, domain.AddRecipeToGroceryResponse{Added: 1, Skipped: 1}, res)
	assert.Nil(t, env.repo.byName(env.userID, "parsley"))

	beef := env.repo.byName(env.userID, "beef")
	require.NotNil(t, beef)
	assert.Equal(t, 500.0, beef.TotalQuantity)
	assert.Equal(t, 1.0, beef.Sources[0].ServingsMultiplier)
	assert.False(t, beef.IsChecked)
}

func TestAddFromRecipeFallsBackToLowercasedName(t *testing.T) {
	env := newTestEnv(t)
	recipe := env.addRecipe(recipeWith(env.userID, "Salad", entities.RecipeIngredient{Name: " Tomato ", Quantity: 2}))

	env.add(t, recipe, 1, nil)

	tomato := env.repo.byName(env.userID, "tomato")
	require.NotNil(t, tomato)
	assert.Equal(t, "Tomato", tomato.Name)
}

func TestMergeNormalizesCategory(t *testing.T) {
	env := newTestEnv(t)
	apple := ingredient("apple", 2, "pcs")
	apple.Category = " Produce "
	pear := ingredient("pear", 1, "pcs")
	pear.Category = "produce"
	recipe := env.addRecipe(recipeWith(env.userID, "Fruit salad", apple, pear))
	env.add(t, recipe, 1, nil)

	assert.Equal(t, "produce", env.repo.byName(env.userID, "apple").Category)

	groups, err := env.svc.GetGroupedList(context.Background(), env.userID.String(), false)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "produce", groups[0].Category)
	assert.Len(t, groups[0].Items, 2)
}

func TestMergeKeepsFirstUnitAndFillsCategory(t *testing.T) {
	env := newTestEnv(t)
	first := ingredient("milk", 2, "cup")
	second := ingredient("milk", 1, "liter")
	second.Name = "Whole milk"
	second.Category = "dairy"

	recipeA := env.addRecipe(recipeWith(env.userID, "A", first))
	recipeB := env.addRecipe(recipeWith(env.userID, "B", second))
	env.add(t, recipeA, 1, nil)
	env.add(t, recipeB, 1, nil)

	milk := env.repo.byName(env.userID, "milk")
	assert.Equal(t, "cup", milk.Unit)
	assert.Equal(t, "dairy", milk.Category)
	assert.Equal(t, "Whole milk", milk.Name)
	assert.Equal(t, 3.0, milk.TotalQuantity)

	env.remove(t, recipeA, nil)
	milk = env.repo.byName(env.userID, "milk")
	assert.Equal(t, "liter", milk.Unit)
	assert.Equal(t, 1.0, milk.TotalQuantity)
}

func TestAddFromRecipeErrors(t *testing.T) {
	env := newTestEnv(t)
	recipe := env.addRecipe(recipeWith(env.userID, "Toast", ingredient("bread", 2, "slice")))
	ctx := context.Background()

	tests := []struct {
		name   string
		req    domain.AddRecipeToGroceryRequest
		userID string
		want   error
	}{
		{"no user", domain.AddRecipeToGroceryRequest{RecipeID: recipe.ID.String()}, "", domain.ErrUnauthorized},
		{"unknown recipe", domain.AddRecipeToGroceryRequest{RecipeID: uuid.NewString()}, env.userID.String(), domain.ErrNotFound},
		{"malformed recipe id", domain.AddRecipeToGroceryRequest{RecipeID: "nope"}, env.userID.String(), domain.ErrNotFound},
		{"negative multiplier", domain.AddRecipeToGroceryRequest{RecipeID: recipe.ID.String(), ServingsMultiplier: -1}, env.userID.String(), domain.ErrInvalidInput},
		{"bad entry id", domain.AddRecipeToGroceryRequest{RecipeID: recipe.ID.String(), MealPlanEntryID: "x"}, env.userID.String(), domain.ErrInvalidInput},
		{"bad date", domain.AddRecipeToGroceryRequest{RecipeID: recipe.ID.String(), ScheduledDate: "03/01/2026"}, env.userID.String(), domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.AddFromRecipe(ctx, tt.req, tt.userID)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, env.repo.items)
}

func TestAddFromRecipeRetriesOnVersionConflict(t *testing.T) {
	env := newTestEnv(t)
	recipeA := env.addRecipe(recipeWith(env.userID, "A", ingredient("butter", 50, "g")))
	recipeB := env.addRecipe(recipeWith(env.userID, "B", ingredient("butter", 30, "g")))
	recipeC := env.addRecipe(recipeWith(env.userID, "C", ingredient("butter", 20, "g")))
	env.add(t, recipeA, 1, nil)

	// Another writer appends recipe C between our read and our write.
	env.repo.afterRead = func(r *fakeGroceryRepository) {
		_, err := env.svc.AddFromRecipe(context.Background(),
			domain.AddRecipeToGroceryRequest{RecipeID: recipeC.ID.String()}, env.userID.String())
		require.NoError(t, err)
	}

	conflictsBefore := testutil.ToFloat64(metrics.MergeConflicts)
	res := env.add(t, recipeB, 1, nil)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, env.repo.conflicts)
	assert.Equal(t, conflictsBefore+1, testutil.ToFloat64(metrics.MergeConflicts))

	butter := env.repo.byName(env.userID, "butter")
	assert.Len(t, butter.Sources, 3)
	assert.Equal(t, 100.0, butter.TotalQuantity)
}

func TestAddFromRecipeRetriesOnCreateRace(t *testing.T) {
	env := newTestEnv(t)
	recipeA := env.addRecipe(recipeWith(env.userID, "A", ingredient("sugar", 100, "g")))
	recipeB := env.addRecipe(recipeWith(env.userID, "B", ingredient("sugar", 25, "g")))

	env.repo.afterRead = func(r *fakeGroceryRepository) {
		_, err := env.svc.AddFromRecipe(context.Background(),
			domain.AddRecipeToGroceryRequest{RecipeID: recipeB.ID.String()}, env.userID.String())
		require.NoError(t, err)
	}

	res := env.add(t, recipeA, 1, nil)
	assert.Equal(t, domain.AddRecipeToGroceryResponse{Updated: 1}, res)
	assert.Equal(t, 1, env.repo.conflicts)

	sugar := env.repo.byName(env.userID, "sugar")
	assert.Len(t, sugar.Sources, 2)
	assert.Equal(t, 125.0, sugar.TotalQuantity)
}

func TestRemoveRecipeSourceKeepsConcurrentAppend(t *testing.T) {
	env := newTestEnv(t)
	recipeA := env.addRecipe(recipeWith(env.userID, "A", ingredient("butter", 50, "g")))
	recipeB := env.addRecipe(recipeWith(env.userID, "B", ingredient("butter", 30, "g")))
	recipeC := env.addRecipe(recipeWith(env.userID, "C", ingredient("butter", 20, "g")))
	env.add(t, recipeA, 1, nil)
	env.add(t, recipeB, 1, nil)

	// Recipe C lands between the scan and the write of the retraction.
	env.repo.afterScan = func(r *fakeGroceryRepository) {
		_, err := env.svc.AddFromRecipe(context.Background(),
			domain.AddRecipeToGroceryRequest{RecipeID: recipeC.ID.String()}, env.userID.String())
		require.NoError(t, err)
	}

	res := env.remove(t, recipeA, nil)
	assert.Equal(t, domain.RemoveRecipeSourceResponse{Updated: 1}, res)
	assert.Equal(t, 1, env.repo.conflicts)

	butter := env.repo.byName(env.userID, "butter")
	require.NotNil(t, butter)
	require.Len(t, butter.Sources, 2)
	assert.Equal(t, recipeB.ID, butter.Sources[0].RecipeID)
	assert.Equal(t, recipeC.ID, butter.Sources[1].RecipeID)
	assert.Equal(t, 50.0, butter.TotalQuantity)
	env.assertTotalsMatchSources(t)
}

func TestRemoveRecipeSourceItemDeletedMeanwhile(t *testing.T) {
	env := newTestEnv(t)
	recipe := env.addRecipe(recipeWith(env.userID, "A", ingredient("yeast", 7, "g")))
	env.add(t, recipe, 1, nil)
	yeast := env.repo.byName(env.userID, "yeast")
	require.NotNil(t, yeast)

	env.repo.afterScan = func(r *fakeGroceryRepository) {
		require.NoError(t, env.svc.RemoveItem(context.Background(), yeast.ID.String(), env.userID.String()))
	}

	res := env.remove(t, recipe, nil)
	assert.Equal(t, domain.RemoveRecipeSourceResponse{}, res)
	assert.Equal(t, 1, env.repo.conflicts)
	assert.Empty(t, env.repo.items)

	outcome, err := env.svc.retractFromItem(context.Background(), yeast, retractionKey(recipe.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, retractNone, outcome)
}

type alwaysConflictRepository struct {
	*fakeGroceryRepository
}

func (r alwaysConflictRepository) UpdateItemSources(ctx context.Context, item *entities.GroceryItem) error {
	return ErrVersionConflict
}

func TestAddFromRecipeGivesUpAfterMaxRetries(t *testing.T) {
	env := newTestEnv(t)
	recipeA := env.addRecipe(recipeWith(env.userID, "A", ingredient("salt", 1, "tsp"), ingredient("pepper", 1, "tsp")))
	recipeB := env.addRecipe(recipeWith(env.userID, "B", ingredient("salt", 2, "tsp"), ingredient("oil", 1, "tbsp")))
	env.add(t, recipeA, 1, nil)

	env.svc.groceryRepository = alwaysConflictRepository{env.repo}
	res, err := env.svc.AddFromRecipe(context.Background(),
		domain.AddRecipeToGroceryRequest{RecipeID: recipeB.ID.String()}, env.userID.String())

	assert.ErrorIs(t, err, domain.ErrConcurrentUpdate)
	// The failed ingredient does not stop the others.
	assert.Equal(t, 1, res.Added)
	assert.NotNil(t, env.repo.byName(env.userID, "oil"))
	assert.Equal(t, 1.0, env.repo.byName(env.userID, "salt").TotalQuantity)
}

func TestConcurrentMealPlanEntriesAllLand(t *testing.T) {
	env := newTestEnv(t)
	const writers = 8
	env.svc.maxRetries = writers
	recipe := env.addRecipe(recipeWith(env.userID, "Frittata", ingredient("eggs", 2, ""), ingredient("cheese", 50, "g")))

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.AddFromRecipe(context.Background(), domain.AddRecipeToGroceryRequest{
				RecipeID:        recipe.ID.String(),
				MealPlanEntryID: uuid.NewString(),
			}, env.userID.String())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	eggs := env.repo.byName(env.userID, "eggs")
	require.NotNil(t, eggs)
	assert.Len(t, eggs.Sources, writers)
	assert.Equal(t, 2.0*writers, eggs.TotalQuantity)

	cheese := env.repo.byName(env.userID, "cheese")
	assert.Len(t, cheese.Sources, writers)
	env.assertTotalsMatchSources(t)
}

func TestRemoveRecipeSourceTouchesEveryItem(t *testing.T) {
	env := newTestEnv(t)
	entry := uuid.New()
	pasta := env.addRecipe(recipeWith(env.userID, "Pasta",
		ingredient("garlic", 2, "clove"),
		ingredient("tomato", 4, "pcs"),
		ingredient("basil", 1, "bunch"),
	))
	salad := env.addRecipe(recipeWith(env.userID, "Salad", ingredient("tomato", 2, "pcs")))

	env.add(t, pasta, 1, nil)
	env.add(t, pasta, 2, &entry)
	env.add(t, salad, 1, nil)

	res := env.remove(t, pasta, nil)
	assert.Equal(t, domain.RemoveRecipeSourceResponse{Removed: 2, Updated: 1}, res)

	assert.Nil(t, env.repo.byName(env.userID, "garlic"))
	assert.Nil(t, env.repo.byName(env.userID, "basil"))
	tomato := env.repo.byName(env.userID, "tomato")
	require.Len(t, tomato.Sources, 1)
	assert.Equal(t, salad.ID, tomato.Sources[0].RecipeID)
	assert.Equal(t, 2.0, tomato.TotalQuantity)

	// Nothing left to retract.
	res = env.remove(t, pasta, nil)
	assert.Equal(t, domain.RemoveRecipeSourceResponse{}, res)
}

func TestRemoveRecipeSourceOnlyTouchesCaller(t *testing.T) {
	env := newTestEnv(t)
	recipe := env.addRecipe(recipeWith(env.userID, "Shared", ingredient("lime", 2, "pcs")))
	other := uuid.New()

	_, err := env.svc.AddFromRecipe(context.Background(),
		domain.AddRecipeToGroceryRequest{RecipeID: recipe.ID.String()}, other.String())
	require.NoError(t, err)
	env.add(t, recipe, 1, nil)

	env.remove(t, recipe, nil)
	assert.Nil(t, env.repo.byName(env.userID, "lime"))
	assert.NotNil(t, env.repo.byName(other, "lime"))
}

func TestRemoveRecipeSourceRejectsBadIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.RemoveRecipeSource(ctx, domain.RemoveRecipeSourceRequest{RecipeID: "bad"}, env.userID.String())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.svc.RemoveRecipeSource(ctx, domain.RemoveRecipeSourceRequest{RecipeID: uuid.NewString()}, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTotalsStayConsistentAcrossOperations(t *testing.T) {
	env := newTestEnv(t)
	r1 := env.addRecipe(recipeWith(env.userID, "R1", ingredient("flour", 250, "g"), ingredient("egg", 2, "")))
	r2 := env.addRecipe(recipeWith(env.userID, "R2", ingredient("flour", 125, "g"), ingredient("milk", 1, "cup")))
	r3 := env.addRecipe(recipeWith(env.userID, "R3", ingredient("egg", 1, ""), ingredient("milk", 0.5, "cup")))
	e1, e2 := uuid.New(), uuid.New()

	steps := []func(){
		func() { env.add(t, r1, 1, nil) },
		func() { env.add(t, r2, 2, &e1) },
		func() { env.add(t, r3, 3, &e2) },
		func() { env.add(t, r1, 1, nil) },
		func() { env.remove(t, r2, &e2) },
		func() { env.add(t, r2, 1, nil) },
		func() { env.remove(t, r1, nil) },
		func() { env.remove(t, r2, &e1) },
		func() { env.add(t, r1, 0.5, &e1) },
		func() { env.remove(t, r3, nil) },
	}
	for _, step := range steps {
		step()
		env.assertTotalsMatchSources(t)
	}
}

func TestUpdateItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	recipe := env.addRecipe(recipeWith(env.userID, "Cake", ingredient("milk", 3, "cup")))
	env.add(t, recipe, 1, nil)
	env.setPantry(&entities.PantryItem{NormalizedName: "milk", Quantity: 1, Unit: "cup"})
	milk := env.repo.byName(env.userID, "milk")

	five := 5.0
	res, err := env.svc.UpdateItem(ctx, milk.ID.String(), domain.UpdateGroceryItemRequest{UserQuantityOverride: &five}, env.userID.String())
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.AdjustedQuantity)
	assert.Equal(t, 5.0, res.EffectiveQuantity)

	checked := true
	res, err = env.svc.UpdateItem(ctx, milk.ID.String(), domain.UpdateGroceryItemRequest{IsChecked: &checked}, env.userID.String())
	require.NoError(t, err)
	assert.True(t, res.IsChecked)
	assert.Equal(t, 5.0, res.EffectiveQuantity)

	res, err = env.svc.UpdateItem(ctx, milk.ID.String(), domain.UpdateGroceryItemRequest{ClearOverride: true}, env.userID.String())
	require.NoError(t, err)
	assert.Nil(t, res.UserQuantityOverride)
	assert.Equal(t, 2.0, res.EffectiveQuantity)

	stored := env.repo.byName(env.userID, "milk")
	assert.True(t, stored.IsChecked)
	assert.Nil(t, stored.UserQuantityOverride)
	assert.Equal(t, 3.0, stored.TotalQuantity)
	assert.Equal(t, milk.Version, stored.Version)
}

func TestUpdateItemErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	recipe := env.addRecipe(recipeWith(env.userID, "Cake", ingredient("milk", 3, "cup")))
	env.add(t, recipe, 1, nil)
	milk := env.repo.byName(env.userID, "milk")
	negative := -1.0
	two := 2.0
	checked := true

	tests := []struct {
		name   string
		itemID string
		userID string
		req    domain.UpdateGroceryItemRequest
		want   error
	}{
		{"other user", milk.ID.String(), uuid.NewString(), domain.UpdateGroceryItemRequest{IsChecked: &checked}, domain.ErrForbidden},
		{"missing item", uuid.NewString(), env.userID.String(), domain.UpdateGroceryItemRequest{IsChecked: &checked}, domain.ErrNotFound},
		{"empty request", milk.ID.String(), env.userID.String(), domain.UpdateGroceryItemRequest{}, domain.ErrInvalidInput},
		{"negative override", milk.ID.String(), env.userID.String(), domain.UpdateGroceryItemRequest{UserQuantityOverride: &negative}, domain.ErrInvalidInput},
		{"clear and set override", milk.ID.String(), env.userID.String(), domain.UpdateGroceryItemRequest{UserQuantityOverride: &two, ClearOverride: true}, domain.ErrConflictingOverride},
		{"no user", milk.ID.String(), "", domain.UpdateGroceryItemRequest{IsChecked: &checked}, domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.UpdateItem(ctx, tt.itemID, tt.req, tt.userID)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	milk = env.repo.byName(env.userID, "milk")
	assert.False(t, milk.IsChecked)
	assert.Nil(t, milk.UserQuantityOverride)
}

func TestSetAmazonFreshURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	recipe := env.addRecipe(recipeWith(env.userID, "Tacos", ingredient("tortilla", 8, "pcs")))
	env.add(t, recipe, 1, nil)
	item := env.repo.byName(env.userID, "tortilla")

	res, err := env.svc.SetAmazonFreshURL(ctx, item.ID.String(),
		domain.SetAmazonFreshURLRequest{URL: "https://www.amazon.com/fresh/tortilla"}, env.userID.String())
	require.NoError(t, err)
	assert.Equal(t, "https://www.amazon.com/fresh/tortilla", res.AmazonFreshURL)

	_, err = env.svc.SetAmazonFreshURL(ctx, item.ID.String(),
		domain.SetAmazonFreshURLRequest{URL: "https://example.com"}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRemoveItemAndClearAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	recipe := env.addRecipe(recipeWith(env.userID, "Chili",
		ingredient("beans", 400, "g"),
		ingredient("onion", 1, "pcs"),
		ingredient("beef", 300, "g"),
	))
	env.add(t, recipe, 1, nil)
	beans := env.repo.byName(env.userID, "beans")

	err := env.svc.RemoveItem(ctx, beans.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, env.svc.RemoveItem(ctx, beans.ID.String(), env.userID.String()))
	assert.Nil(t, env.repo.byName(env.userID, "beans"))

	err = env.svc.RemoveItem(ctx, beans.ID.String(), env.userID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	count, err := env.svc.GetCount(ctx, env.userID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count.Count)

	cleared, err := env.svc.ClearAll(ctx, env.userID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), cleared.Deleted)
	assert.Empty(t, env.repo.items)
}

func TestGetListAppliesPantryAndFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	milk := ingredient("milk", 3, "cup")
	milk.Category = "dairy"
	bread := ingredient("bread", 1, "loaf")
	bread.Category = "bakery"
	recipe := env.addRecipe(recipeWith(env.userID, "Breakfast", milk, bread, ingredient("jam", 1, "jar")))
	env.add(t, recipe, 1, nil)
	env.setPantry(&entities.PantryItem{NormalizedName: "milk", Quantity: 1, Unit: "Cup"})

	checked := true
	jam := env.repo.byName(env.userID, "jam")
	_, err := env.svc.UpdateItem(ctx, jam.ID.String(), domain.UpdateGroceryItemRequest{IsChecked: &checked}, env.userID.String())
	require.NoError(t, err)

	list, err := env.svc.GetList(ctx, env.userID.String(), false)
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "bread", list.Items[0].NormalizedName)
	assert.Equal(t, "milk", list.Items[1].NormalizedName)
	assert.Equal(t, 2.0, list.Items[1].AdjustedQuantity)
	require.NotNil(t, list.Items[1].PantryQuantity)
	assert.Equal(t, 1.0, *list.Items[1].PantryQuantity)

	groups, err := env.svc.GetGroupedList(ctx, env.userID.String(), true)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"bakery", "dairy", domain.OtherCategory},
		[]string{groups[0].Category, groups[1].Category, groups[2].Category})
	assert.True(t, groups[2].Items[0].IsChecked)
}
