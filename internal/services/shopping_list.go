package services

import (
	"context"

	"github.com/yungbote/mealplan-gateway/internal/clients/dbadapter"
	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

// Consolidator merges a raw shopping list into one gram entry per ingredient.
type Consolidator interface {
	Consolidate(ctx context.Context, entries []domain.ShoppingListEntry) ([]domain.ShoppingListEntry, error)
}

// Aggregator groups ingredients by shopping category.
type Aggregator interface {
	Aggregate(ctx context.Context, refs []domain.IngredientRef) (*domain.CategoryGroups, error)
}

type ShoppingListService interface {
	Get(ctx context.Context, userID int) ([]domain.ShoppingListEntry, error)
	// Update consolidates entries and persists the result.
	Update(ctx context.Context, userID int, entries []domain.ShoppingListEntry) ([]domain.ShoppingListEntry, error)
	// Grouped returns the stored list grouped by shopping category.
	Grouped(ctx context.Context, userID int) (*domain.CategoryGroups, error)
}

type shoppingListService struct {
	log          *logger.Logger
	db           dbadapter.Client
	consolidator Consolidator
	aggregator   Aggregator
}

func NewShoppingListService(log *logger.Logger, db dbadapter.Client, consolidator Consolidator, aggregator Aggregator) ShoppingListService {
	return &shoppingListService{
		log:          log.With("service", "ShoppingListService"),
		db:           db,
		consolidator: consolidator,
		aggregator:   aggregator,
	}
}

func (s *shoppingListService) Get(ctx context.Context, userID int) ([]domain.ShoppingListEntry, error) {
	return s.db.GetShoppingList(ctx, userID)
}

func (s *shoppingListService) Update(ctx context.Context, userID int, entries []domain.ShoppingListEntry) ([]domain.ShoppingListEntry, error) {
	for _, e := range entries {
		if e.Quantity < 0 {
			return nil, apierr.Invalid("quantity of ingredient %d must not be negative", e.IngredientID)
		}
	}
	merged, err := s.consolidator.Consolidate(ctx, entries)
	if err != nil {
		return nil, err
	}
	saved, err := s.db.UpdateShoppingList(ctx, userID, merged)
	if err != nil {
		return nil, err
	}
	s.log.Info("shopping list updated", "user_id", userID, "entries_in", len(entries), "entries_out", len(merged))
	return saved, nil
}

func (s *shoppingListService) Grouped(ctx context.Context, userID int) (*domain.CategoryGroups, error) {
	list, err := s.db.GetShoppingList(ctx, userID)
	if err != nil {
		return nil, err
	}
	refs := make([]domain.IngredientRef, 0, len(list))
	seen := make(map[int]struct{}, len(list))
	for _, e := range list {
		if _, dup := seen[e.IngredientID]; dup {
			continue
		}
		seen[e.IngredientID] = struct{}{}
		refs = append(refs, domain.IngredientRef{IngredientID: e.IngredientID})
	}
	return s.aggregator.Aggregate(ctx, refs)
}
