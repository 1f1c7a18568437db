package services

import (
	"context"
	"math"

	"github.com/yungbote/mealplan-gateway/internal/clients/geoshops"
	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/grocery"
	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

type GroceryService interface {
	GroupIngredients(ctx context.Context, refs []domain.IngredientRef) (*domain.CategoryGroups, error)
	// NearbyShops finds shops for every category near at. One unknown category
	// fails the whole query.
	NearbyShops(ctx context.Context, at domain.Coordinates, categories []string) ([]domain.Shop, error)
}

type groceryService struct {
	log        *logger.Logger
	aggregator Aggregator
	shops      geoshops.Client
}

func NewGroceryService(log *logger.Logger, aggregator Aggregator, shops geoshops.Client) GroceryService {
	return &groceryService{
		log:        log.With("service", "GroceryService"),
		aggregator: aggregator,
		shops:      shops,
	}
}

func (s *groceryService) GroupIngredients(ctx context.Context, refs []domain.IngredientRef) (*domain.CategoryGroups, error) {
	for _, r := range refs {
		if r.IngredientID <= 0 {
			return nil, apierr.Invalid("invalid ingredient_id %d", r.IngredientID)
		}
	}
	return s.aggregator.Aggregate(ctx, refs)
}

func (s *groceryService) NearbyShops(ctx context.Context, at domain.Coordinates, categories []string) ([]domain.Shop, error) {
	if math.Abs(at.Lat) > 90 || math.Abs(at.Lon) > 180 {
		return nil, apierr.Invalid("coordinates out of range")
	}
	if len(categories) == 0 {
		return nil, apierr.Invalid("at least one category is required")
	}
	shopTypes, err := grocery.ShopTypesFor(categories)
	if err != nil {
		s.log.Warn("nearby shop query rejected", "error", err)
		return nil, err
	}
	found, err := s.shops.ShopsByCoord(ctx, at, shopTypes)
	if err != nil {
		return nil, err
	}
	return grocery.RelabelShops(found)
}
