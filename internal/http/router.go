package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/mealplan-gateway/internal/http/handlers"
	httpMW "github.com/yungbote/mealplan-gateway/internal/http/middleware"
	"github.com/yungbote/mealplan-gateway/internal/observability"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	ServiceName     string
	Tracing         bool
	MetricsPath     string
	CORSOrigins     []string
	MaxRequestBytes int64
	RateLimit       float64
	RateBurst       int

	HealthHandler       *httpH.HealthHandler
	UserHandler         *httpH.UserHandler
	CaloriesHandler     *httpH.CaloriesHandler
	MealPlanHandler     *httpH.MealPlanHandler
	RecipeHandler       *httpH.RecipeHandler
	ShoppingListHandler *httpH.ShoppingListHandler
	GroceryHandler      *httpH.GroceryHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(httpMW.Recovery(cfg.Log, cfg.Metrics))
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.RequestIDs())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil && cfg.MetricsPath != "" {
		r.GET(cfg.MetricsPath, gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	api.Use(httpMW.RateLimit(cfg.RateLimit, cfg.RateBurst, cfg.Metrics))
	api.Use(httpMW.LimitRequestBody(cfg.MaxRequestBytes))
	{
		// Users
		if cfg.UserHandler != nil {
			api.GET("/users/:user", cfg.UserHandler.GetUser)
			api.POST("/users", cfg.UserHandler.CreateUser)
			api.PATCH("/users/:user", cfg.UserHandler.UpdateUser)
		}

		if cfg.CaloriesHandler != nil {
			api.GET("/calories", cfg.CaloriesHandler.NeededCalories)
		}

		// Meal plans
		if cfg.MealPlanHandler != nil {
			api.GET("/users/:user/mealPlans", cfg.MealPlanHandler.ListMealPlans)
			api.GET("/users/:user/mealPlans/:mealPlanId", cfg.MealPlanHandler.GetMealPlan)
			api.POST("/users/:user/mealPlans", cfg.MealPlanHandler.SaveMealPlan)
			api.GET("/mealPlans", cfg.MealPlanHandler.GenerateMealPlan)
		}

		// Recipes
		if cfg.RecipeHandler != nil {
			api.GET("/users/:user/recipes", cfg.RecipeHandler.ListUserRecipes)
			api.POST("/users/:user/recipes", cfg.RecipeHandler.SaveUserRecipes)
			api.DELETE("/users/:user/recipes/:recipeId", cfg.RecipeHandler.DeleteUserRecipe)
			api.GET("/recipes", cfg.RecipeHandler.SearchRecipes)
			api.GET("/recipes/:recipeId", cfg.RecipeHandler.RecipeDetails)
		}

		// Shopping list
		if cfg.ShoppingListHandler != nil {
			api.GET("/users/:user/shoppingList", cfg.ShoppingListHandler.GetShoppingList)
			api.PATCH("/users/:user/shoppingList", cfg.ShoppingListHandler.UpdateShoppingList)
			api.GET("/users/:user/shoppingList/grouped", cfg.ShoppingListHandler.GroupedShoppingList)
		}

		// Grocery
		if cfg.GroceryHandler != nil {
			api.POST("/ingredients/grouped", cfg.GroceryHandler.GroupIngredients)
			api.POST("/shops", cfg.GroceryHandler.NearbyShops)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found", "code": "not_found"})
	})

	return r
}
