package services

import (
	"context"
	"strings"

	"github.com/yungbote/mealplan-gateway/internal/clients/dbadapter"
	"github.com/yungbote/mealplan-gateway/internal/clients/spoonacular"
	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

const maxSearchResults = 100

type RecipeService interface {
	ListSaved(ctx context.Context, userID int) ([]domain.RecipeRef, error)
	Save(ctx context.Context, userID int, refs []domain.RecipeRef) ([]domain.RecipeRef, error)
	Delete(ctx context.Context, userID, recipeID int) (domain.RecipeRef, error)
	Search(ctx context.Context, query string, diet domain.DietType, n int) ([]domain.Recipe, error)
	Details(ctx context.Context, recipeID int) (domain.Recipe, error)
}

type recipeService struct {
	log      *logger.Logger
	db       dbadapter.Client
	provider spoonacular.Client
}

func NewRecipeService(log *logger.Logger, db dbadapter.Client, provider spoonacular.Client) RecipeService {
	return &recipeService{
		log:      log.With("service", "RecipeService"),
		db:       db,
		provider: provider,
	}
}

func (s *recipeService) ListSaved(ctx context.Context, userID int) ([]domain.RecipeRef, error) {
	return s.db.ListRecipes(ctx, userID)
}

func (s *recipeService) Save(ctx context.Context, userID int, refs []domain.RecipeRef) ([]domain.RecipeRef, error) {
	if len(refs) == 0 {
		return nil, apierr.Invalid("at least one recipe is required")
	}
	for _, r := range refs {
		if r.RecipeID <= 0 {
			return nil, apierr.Invalid("invalid recipe_id %d", r.RecipeID)
		}
	}
	return s.db.SaveRecipes(ctx, userID, refs)
}

func (s *recipeService) Delete(ctx context.Context, userID, recipeID int) (domain.RecipeRef, error) {
	return s.db.DeleteRecipe(ctx, userID, recipeID)
}

func (s *recipeService) Search(ctx context.Context, query string, diet domain.DietType, n int) ([]domain.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apierr.Invalid("parameter q is required to search for recipes")
	}
	if n < 1 {
		n = 1
	}
	if n > maxSearchResults {
		n = maxSearchResults
	}
	return s.provider.SearchRecipes(ctx, query, string(domain.ParseDietType(string(diet))), n)
}

func (s *recipeService) Details(ctx context.Context, recipeID int) (domain.Recipe, error) {
	return s.provider.GetRecipe(ctx, recipeID)
}
