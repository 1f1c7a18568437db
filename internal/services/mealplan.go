package services

import (
	"context"
	"fmt"

	"github.com/yungbote/mealplan-gateway/internal/clients/dbadapter"
	"github.com/yungbote/mealplan-gateway/internal/clients/spoonacular"
	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

const (
	maxPlanDays    = 31
	maxMealsPerDay = 10
	recipeProvider = "recipe provider"
)

type GeneratePlanRequest struct {
	Calories    float64
	Days        int
	MealsPerDay int
	Diet        domain.DietType
}

type MealPlanService interface {
	List(ctx context.Context, userID int) ([]domain.MealPlan, error)
	Get(ctx context.Context, userID, mealPlanID int) (domain.MealPlan, error)
	Save(ctx context.Context, userID int, plan domain.MealPlan) (domain.MealPlan, error)
	Generate(ctx context.Context, req GeneratePlanRequest) (domain.MealPlan, error)
}

type mealPlanService struct {
	log     *logger.Logger
	db      dbadapter.Client
	recipes spoonacular.Client
}

func NewMealPlanService(log *logger.Logger, db dbadapter.Client, recipes spoonacular.Client) MealPlanService {
	return &mealPlanService{
		log:     log.With("service", "MealPlanService"),
		db:      db,
		recipes: recipes,
	}
}

func (s *mealPlanService) List(ctx context.Context, userID int) ([]domain.MealPlan, error) {
	return s.db.ListMealPlans(ctx, userID)
}

func (s *mealPlanService) Get(ctx context.Context, userID, mealPlanID int) (domain.MealPlan, error) {
	return s.db.GetMealPlan(ctx, userID, mealPlanID)
}

func (s *mealPlanService) Save(ctx context.Context, userID int, plan domain.MealPlan) (domain.MealPlan, error) {
	if plan.DailyCalories < 0 {
		return domain.MealPlan{}, apierr.Invalid("daily_calories must not be negative")
	}
	plan.DietType = string(domain.ParseDietType(plan.DietType))
	return s.db.SaveMealPlan(ctx, userID, plan)
}

// Generate asks the recipe provider for days*mealsPerDay recipes and deals
// them out day by day.
func (s *mealPlanService) Generate(ctx context.Context, req GeneratePlanRequest) (domain.MealPlan, error) {
	if req.Calories <= 0 {
		return domain.MealPlan{}, apierr.Invalid("calories must be positive")
	}
	if req.Days < 1 || req.Days > maxPlanDays {
		return domain.MealPlan{}, apierr.Invalid("days must be between 1 and %d", maxPlanDays)
	}
	if req.MealsPerDay < 1 || req.MealsPerDay > maxMealsPerDay {
		return domain.MealPlan{}, apierr.Invalid("mealsPerDay must be between 1 and %d", maxMealsPerDay)
	}
	diet := domain.ParseDietType(string(req.Diet))
	total := req.Days * req.MealsPerDay

	recipes, err := s.recipes.RandomRecipes(ctx, string(diet), total)
	if err != nil {
		return domain.MealPlan{}, err
	}
	if len(recipes) < total {
		return domain.MealPlan{}, apierr.Unavailable(recipeProvider,
			fmt.Errorf("returned %d recipes, %d needed", len(recipes), total))
	}

	plans := make([]domain.DailyPlan, 0, req.Days)
	for d := 0; d < req.Days; d++ {
		day := make([]domain.Recipe, req.MealsPerDay)
		copy(day, recipes[d*req.MealsPerDay:(d+1)*req.MealsPerDay])
		plans = append(plans, domain.DailyPlan{Recipes: day})
	}
	s.log.Debug("meal plan generated", "days", req.Days, "meals_per_day", req.MealsPerDay, "diet", diet)
	return domain.MealPlan{
		DailyCalories: req.Calories,
		DietType:      string(diet),
		DailyPlans:    plans,
	}, nil
}
