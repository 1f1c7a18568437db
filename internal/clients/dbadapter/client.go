package dbadapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yungbote/mealplan-gateway/internal/clients/breaker"
	"github.com/yungbote/mealplan-gateway/internal/clients/transport"
	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

const collaborator = "data service"

// Client is the storage collaborator for users, saved recipes, meal plans
// and shopping lists.
type Client interface {
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)
	UpdateUser(ctx context.Context, id int, u domain.User) (domain.User, error)

	ListMealPlans(ctx context.Context, userID int) ([]domain.MealPlan, error)
	GetMealPlan(ctx context.Context, userID, mealPlanID int) (domain.MealPlan, error)
	SaveMealPlan(ctx context.Context, userID int, plan domain.MealPlan) (domain.MealPlan, error)

	ListRecipes(ctx context.Context, userID int) ([]domain.RecipeRef, error)
	SaveRecipes(ctx context.Context, userID int, recipes []domain.RecipeRef) ([]domain.RecipeRef, error)
	DeleteRecipe(ctx context.Context, userID, recipeID int) (domain.RecipeRef, error)

	GetShoppingList(ctx context.Context, userID int) ([]domain.ShoppingListEntry, error)
	UpdateShoppingList(ctx context.Context, userID int, entries []domain.ShoppingListEntry) ([]domain.ShoppingListEntry, error)
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Breaker    breaker.Config
	HTTPClient *http.Client
	Observer   transport.CallObserver
}

type client struct {
	log *logger.Logger
	tc  *transport.Client
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	tc, err := transport.New(log, transport.Config{
		Name:       "dbadapter",
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		Breaker:    cfg.Breaker,
		HTTPClient: cfg.HTTPClient,
		Observer:   cfg.Observer,
	})
	if err != nil {
		return nil, err
	}
	return &client{log: log.With("client", "DBAdapterClient"), tc: tc}, nil
}

func userPath(userID int, rest ...string) string {
	p := "/users/" + strconv.Itoa(userID)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

func (c *client) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	out, err := transport.DoJSON[domain.User](c.tc, ctx, "get_user", http.MethodGet, "/users/"+url.PathEscape(username), nil, nil)
	if err != nil {
		return domain.User{}, mapErr(err, "user "+username)
	}
	return out, nil
}

func (c *client) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	out, err := transport.DoJSON[domain.User](c.tc, ctx, "create_user", http.MethodPost, "/users/", nil, u)
	if err != nil {
		return domain.User{}, mapErr(err, "user")
	}
	return out, nil
}

func (c *client) UpdateUser(ctx context.Context, id int, u domain.User) (domain.User, error) {
	out, err := transport.DoJSON[domain.User](c.tc, ctx, "update_user", http.MethodPatch, userPath(id), nil, u)
	if err != nil {
		return domain.User{}, mapErr(err, fmt.Sprintf("user %d", id))
	}
	return out, nil
}

func (c *client) ListMealPlans(ctx context.Context, userID int) ([]domain.MealPlan, error) {
	out, err := transport.DoJSON[[]domain.MealPlan](c.tc, ctx, "list_meal_plans", http.MethodGet, userPath(userID, "mealPlans"), nil, nil)
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("meal plans of user %d", userID))
	}
	return out, nil
}

func (c *client) GetMealPlan(ctx context.Context, userID, mealPlanID int) (domain.MealPlan, error) {
	out, err := transport.DoJSON[domain.MealPlan](c.tc, ctx, "get_meal_plan", http.MethodGet, userPath(userID, "mealPlans", strconv.Itoa(mealPlanID)), nil, nil)
	if err != nil {
		return domain.MealPlan{}, mapErr(err, fmt.Sprintf("meal plan %d", mealPlanID))
	}
	return out, nil
}

func (c *client) SaveMealPlan(ctx context.Context, userID int, plan domain.MealPlan) (domain.MealPlan, error) {
	out, err := transport.DoJSON[domain.MealPlan](c.tc, ctx, "save_meal_plan", http.MethodPost, userPath(userID, "mealPlans"), nil, plan)
	if err != nil {
		return domain.MealPlan{}, mapErr(err, fmt.Sprintf("user %d", userID))
	}
	return out, nil
}

func (c *client) ListRecipes(ctx context.Context, userID int) ([]domain.RecipeRef, error) {
	out, err := transport.DoJSON[[]domain.RecipeRef](c.tc, ctx, "list_recipes", http.MethodGet, userPath(userID, "recipes"), nil, nil)
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("recipes of user %d", userID))
	}
	return out, nil
}

func (c *client) SaveRecipes(ctx context.Context, userID int, recipes []domain.RecipeRef) ([]domain.RecipeRef, error) {
	out, err := transport.DoJSON[[]domain.RecipeRef](c.tc, ctx, "save_recipes", http.MethodPost, userPath(userID, "recipes"), nil, recipes)
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("user %d", userID))
	}
	return out, nil
}

func (c *client) DeleteRecipe(ctx context.Context, userID, recipeID int) (domain.RecipeRef, error) {
	out, err := transport.DoJSON[domain.RecipeRef](c.tc, ctx, "delete_recipe", http.MethodDelete, userPath(userID, "recipes", strconv.Itoa(recipeID)), nil, nil)
	if err != nil {
		return domain.RecipeRef{}, mapErr(err, fmt.Sprintf("recipe %d", recipeID))
	}
	if out.RecipeID == 0 {
		out.RecipeID = recipeID
	}
	return out, nil
}

func (c *client) GetShoppingList(ctx context.Context, userID int) ([]domain.ShoppingListEntry, error) {
	out, err := transport.DoJSON[[]domain.ShoppingListEntry](c.tc, ctx, "get_shopping_list", http.MethodGet, userPath(userID, "shoppingList"), nil, nil)
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("shopping list of user %d", userID))
	}
	return out, nil
}

func (c *client) UpdateShoppingList(ctx context.Context, userID int, entries []domain.ShoppingListEntry) ([]domain.ShoppingListEntry, error) {
	out, err := transport.DoJSON[[]domain.ShoppingListEntry](c.tc, ctx, "update_shopping_list", http.MethodPatch, userPath(userID, "shoppingList"), nil, entries)
	if err != nil {
		return nil, mapErr(err, fmt.Sprintf("shopping list of user %d", userID))
	}
	return out, nil
}

func mapErr(err error, what string) error {
	if errors.Is(err, transport.ErrEncode) {
		return apierr.New(http.StatusInternalServerError, apierr.CodeInternal, err)
	}
	if transport.StatusOf(err) == http.StatusNotFound {
		return apierr.NotFound(what)
	}
	return apierr.Unavailable(collaborator, err)
}
