package services

import (
	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
)

var activityMultiplier = map[domain.ActivityFactor]float64{
	domain.ActivityNone:     1.2,
	domain.ActivityLight:    1.375,
	domain.ActivityModerate: 1.55,
	domain.ActivityVery:     1.725,
	domain.ActivityExtra:    1.9,
}

type CaloriesService interface {
	NeededCalories(data domain.CaloriesData) (float64, error)
}

type caloriesService struct{}

func NewCaloriesService() CaloriesService { return caloriesService{} }

// NeededCalories is the Mifflin-St Jeor basal rate scaled by the activity factor.
func (caloriesService) NeededCalories(data domain.CaloriesData) (float64, error) {
	if data.Height <= 0 || data.Weight <= 0 || data.Age <= 0 {
		return 0, apierr.Invalid("height, weight and age must be positive")
	}
	return BMR(data) * activityMultiplier[domain.ParseActivityFactor(string(data.ActivityFactor))], nil
}

func BMR(data domain.CaloriesData) float64 {
	base := 10*data.Weight + 6.25*data.Height - 5*data.Age
	if domain.ParseSex(string(data.Sex)) == domain.SexFemale {
		return base - 161
	}
	return base + 5
}
