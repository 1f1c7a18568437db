package services

import (
	"context"

	"github.com/yungbote/mealplan-gateway/internal/clients/dbadapter"
	"github.com/yungbote/mealplan-gateway/internal/clients/spoonacular"
	"github.com/yungbote/mealplan-gateway/internal/domain"
)

// fakeDB implements the methods the tests need; anything else panics through
// the nil embedded interface.
type fakeDB struct {
	dbadapter.Client

	users     map[string]domain.User
	created   []domain.User
	updated   []domain.User
	lists     map[int][]domain.ShoppingListEntry
	saved     map[int][]domain.ShoppingListEntry
	plans     []domain.MealPlan
	savedRefs []domain.RecipeRef
	err       error
}

func (f *fakeDB) GetUserByUsername(_ context.Context, username string) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	return f.users[username], nil
}

func (f *fakeDB) CreateUser(_ context.Context, u domain.User) (domain.User, error) {
	f.created = append(f.created, u)
	u.ID = len(f.created)
	return u, f.err
}

func (f *fakeDB) UpdateUser(_ context.Context, _ int, u domain.User) (domain.User, error) {
	f.updated = append(f.updated, u)
	return u, f.err
}

func (f *fakeDB) GetShoppingList(_ context.Context, userID int) ([]domain.ShoppingListEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lists[userID], nil
}

func (f *fakeDB) UpdateShoppingList(_ context.Context, userID int, entries []domain.ShoppingListEntry) ([]domain.ShoppingListEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.saved == nil {
		f.saved = map[int][]domain.ShoppingListEntry{}
	}
	f.saved[userID] = entries
	return entries, nil
}

func (f *fakeDB) SaveMealPlan(_ context.Context, _ int, plan domain.MealPlan) (domain.MealPlan, error) {
	f.plans = append(f.plans, plan)
	return plan, f.err
}

func (f *fakeDB) SaveRecipes(_ context.Context, _ int, refs []domain.RecipeRef) ([]domain.RecipeRef, error) {
	f.savedRefs = append(f.savedRefs, refs...)
	return refs, f.err
}

type fakeProvider struct {
	spoonacular.Client

	recipes   []domain.Recipe
	err       error
	lastDiet  string
	lastN     int
	lastQuery string
}

func (f *fakeProvider) RandomRecipes(_ context.Context, diet string, n int) ([]domain.Recipe, error) {
	f.lastDiet, f.lastN = diet, n
	if f.err != nil {
		return nil, f.err
	}
	if n < len(f.recipes) {
		return f.recipes[:n], nil
	}
	return f.recipes, nil
}

func (f *fakeProvider) SearchRecipes(_ context.Context, query, diet string, n int) ([]domain.Recipe, error) {
	f.lastQuery, f.lastDiet, f.lastN = query, diet, n
	return f.recipes, f.err
}

type fakeShops struct {
	shops    []domain.Shop
	err      error
	calls    int
	gotTypes []string
}

func (f *fakeShops) ShopsByCoord(_ context.Context, _ domain.Coordinates, shopTypes []string) ([]domain.Shop, error) {
	f.calls++
	f.gotTypes = shopTypes
	return f.shops, f.err
}

type stubAggregator struct {
	got    []domain.IngredientRef
	groups *domain.CategoryGroups
	err    error
}

func (s *stubAggregator) Aggregate(_ context.Context, refs []domain.IngredientRef) (*domain.CategoryGroups, error) {
	s.got = refs
	return s.groups, s.err
}

func recipesN(n int) []domain.Recipe {
	out := make([]domain.Recipe, n)
	for i := range out {
		out[i] = domain.Recipe{ID: i + 1}
	}
	return out
}
