package domain

// User mirrors the profile record kept by the data service.
type User struct {
	ID                  int     `json:"mp_user_id"`
	Username            string  `json:"username"`
	Height              float64 `json:"height"`
	Weight              float64 `json:"weight"`
	Sex                 string  `json:"sex"`
	BirthYear           int     `json:"birth_year"`
	DietType            string  `json:"diet_type"`
	ActivityFactor      string  `json:"activity_factor"`
	Address             string  `json:"address"`
	ShoppingListID      int     `json:"shopping_list_id"`
	CurrentWeeklyPlanID int     `json:"current_weekly_plan_id"`
}
