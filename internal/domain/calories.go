package domain

type Sex string

const (
	SexMale   Sex = "m"
	SexFemale Sex = "f"
)

type ActivityFactor string

const (
	ActivityNone     ActivityFactor = "none"
	ActivityLight    ActivityFactor = "light"
	ActivityModerate ActivityFactor = "moderate"
	ActivityVery     ActivityFactor = "very"
	ActivityExtra    ActivityFactor = "extra"
)

type DietType string

const (
	DietOmni       DietType = "omni"
	DietVegan      DietType = "vegan"
	DietVegetarian DietType = "vegetarian"
	DietGlutenFree DietType = "glutenFree"
)

// CaloriesData is the input to the daily calorie estimate. Height is in cm,
// weight in kg and age in years.
type CaloriesData struct {
	Height         float64        `json:"height"`
	Weight         float64        `json:"weight"`
	Age            float64        `json:"age"`
	Sex            Sex            `json:"sex"`
	ActivityFactor ActivityFactor `json:"activityFactor"`
}

// ParseSex maps anything but "f" to SexMale.
func ParseSex(s string) Sex {
	if Sex(s) == SexFemale {
		return SexFemale
	}
	return SexMale
}

// ParseActivityFactor falls back to ActivityModerate for unknown values.
func ParseActivityFactor(s string) ActivityFactor {
	switch a := ActivityFactor(s); a {
	case ActivityNone, ActivityLight, ActivityModerate, ActivityVery, ActivityExtra:
		return a
	}
	return ActivityModerate
}

// ParseDietType falls back to DietOmni for unknown values.
func ParseDietType(s string) DietType {
	switch d := DietType(s); d {
	case DietOmni, DietVegan, DietVegetarian, DietGlutenFree:
		return d
	}
	return DietOmni
}
