package domain

// RecipeRef identifies a recipe saved by a user.
type RecipeRef struct {
	RecipeID int `json:"recipe_id"`
}

type Measure struct {
	Amount    float64 `json:"amount"`
	UnitLong  string  `json:"unitLong"`
	UnitShort string  `json:"unitShort"`
}

type RecipeIngredient struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Measures struct {
		Metric Measure `json:"metric"`
	} `json:"measures"`
}

// Recipe is the normalized recipe shape returned by the recipe provider.
type Recipe struct {
	ID              int                `json:"id"`
	Title           string             `json:"title"`
	Image           string             `json:"image,omitempty"`
	ImageType       string             `json:"imageType,omitempty"`
	Ingredients     []RecipeIngredient `json:"ingredients"`
	Summary         string             `json:"summary,omitempty"`
	SourceURL       string             `json:"sourceUrl,omitempty"`
	Servings        int                `json:"servings"`
	ReadyInMinutes  int                `json:"readyInMinutes"`
	PricePerServing float64            `json:"pricePerServing"`
	GlutenFree      bool               `json:"glutenFree"`
	Vegan           bool               `json:"vegan"`
	Vegetarian      bool               `json:"vegetarian"`
	Instructions    string             `json:"instructions,omitempty"`
}
