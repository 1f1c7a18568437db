package domain

type DailyPlan struct {
	Recipes []Recipe `json:"recipes"`
}

type MealPlan struct {
	ID            int         `json:"meal_plan_id,omitempty"`
	DailyCalories float64     `json:"daily_calories"`
	DietType      string      `json:"diet_type"`
	DailyPlans    []DailyPlan `json:"daily_plans"`
}
