package app

import (
	"github.com/yungbote/mealplan-gateway/internal/clients/redis"
	"github.com/yungbote/mealplan-gateway/internal/config"
	"github.com/yungbote/mealplan-gateway/internal/grocery"
	"github.com/yungbote/mealplan-gateway/internal/observability"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
	"github.com/yungbote/mealplan-gateway/internal/services"
)

type Services struct {
	User         services.UserService
	Calories     services.CaloriesService
	MealPlan     services.MealPlanService
	Recipe       services.RecipeService
	ShoppingList services.ShoppingListService
	Grocery      services.GroceryService
}

func wireServices(log *logger.Logger, cfg *config.Config, clients Clients, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	var facts grocery.FactLookup = clients.Spoonacular
	if clients.FactCache != nil {
		facts = redis.NewCachedLookup(log, clients.Spoonacular, clients.FactCache, metrics)
	}

	aggregator := grocery.NewAggregator(log, facts, cfg.Grocery.LookupConcurrency)
	consolidator := grocery.NewConsolidator(log, clients.Spoonacular, facts,
		grocery.WithDefaultGrams(cfg.Grocery.DefaultGrams),
		grocery.WithFallbackRecorder(metrics),
	)

	return Services{
		User:         services.NewUserService(log, clients.DB),
		Calories:     services.NewCaloriesService(),
		MealPlan:     services.NewMealPlanService(log, clients.DB, clients.Spoonacular),
		Recipe:       services.NewRecipeService(log, clients.DB, clients.Spoonacular),
		ShoppingList: services.NewShoppingListService(log, clients.DB, consolidator, aggregator),
		Grocery:      services.NewGroceryService(log, aggregator, clients.GeoShops),
	}
}
