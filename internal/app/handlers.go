package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/mealplan-gateway/internal/config"
	"github.com/yungbote/mealplan-gateway/internal/http"
	httpH "github.com/yungbote/mealplan-gateway/internal/http/handlers"
	"github.com/yungbote/mealplan-gateway/internal/observability"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

type Handlers struct {
	Health       *httpH.HealthHandler
	User         *httpH.UserHandler
	Calories     *httpH.CaloriesHandler
	MealPlan     *httpH.MealPlanHandler
	Recipe       *httpH.RecipeHandler
	ShoppingList *httpH.ShoppingListHandler
	Grocery      *httpH.GroceryHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       httpH.NewHealthHandler(),
		User:         httpH.NewUserHandler(services.User),
		Calories:     httpH.NewCaloriesHandler(services.Calories),
		MealPlan:     httpH.NewMealPlanHandler(services.MealPlan),
		Recipe:       httpH.NewRecipeHandler(services.Recipe),
		ShoppingList: httpH.NewShoppingListHandler(services.ShoppingList),
		Grocery:      httpH.NewGroceryHandler(services.Grocery),
	}
}

func wireRouter(log *logger.Logger, cfg *config.Config, metrics *observability.Metrics, handlers Handlers) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:                 log,
		Metrics:             metrics,
		ServiceName:         cfg.Tracing.ServiceName,
		Tracing:             cfg.Tracing.Enabled,
		MetricsPath:         cfg.Metrics.Path,
		CORSOrigins:         cfg.HTTP.CORSOrigins,
		MaxRequestBytes:     cfg.HTTP.MaxRequestBytes,
		RateLimit:           cfg.HTTP.RateLimit,
		RateBurst:           cfg.HTTP.RateBurst,
		HealthHandler:       handlers.Health,
		UserHandler:         handlers.User,
		CaloriesHandler:     handlers.Calories,
		MealPlanHandler:     handlers.MealPlan,
		RecipeHandler:       handlers.Recipe,
		ShoppingListHandler: handlers.ShoppingList,
		GroceryHandler:      handlers.Grocery,
	})
}
