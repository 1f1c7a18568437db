package domain

import (
	"bytes"
	"encoding/json"
)

// IngredientRef points into the ingredient fact provider.
type IngredientRef struct {
	IngredientID int `json:"ingredient_id"`
}

// IngredientFact is what the fact provider knows about one ingredient.
// CategoryPath is nil when the provider returned no path.
type IngredientFact struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	CategoryPath []string `json:"categoryPath,omitempty"`
}

// Classifiable reports whether the fact carries enough data to be bucketed.
func (f IngredientFact) Classifiable() bool {
	return f.Name != "" && len(f.CategoryPath) > 0
}

// ShoppingCategory is one taxonomy bucket and the ingredients that fell into it.
type ShoppingCategory struct {
	Category    string           `json:"category"`
	Ingredients []IngredientFact `json:"ingredients"`
}

// ShoppingListEntry is one line of a user's shopping list. Measure is a unit code.
type ShoppingListEntry struct {
	IngredientID int     `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
	Measure      string  `json:"measure"`
}

// CategoryGroups maps taxonomy categories to their bucket, remembering the
// order in which categories were first seen.
type CategoryGroups struct {
	order []string
	byKey map[string]*ShoppingCategory
}

func NewCategoryGroups() *CategoryGroups {
	return &CategoryGroups{byKey: make(map[string]*ShoppingCategory)}
}

// Add appends fact to the bucket for category, creating the bucket on first use.
func (g *CategoryGroups) Add(category string, fact IngredientFact) {
	if g.byKey == nil {
		g.byKey = make(map[string]*ShoppingCategory)
	}
	if sc, ok := g.byKey[category]; ok {
		sc.Ingredients = append(sc.Ingredients, fact)
		return
	}
	g.byKey[category] = &ShoppingCategory{Category: category, Ingredients: []IngredientFact{fact}}
	g.order = append(g.order, category)
}

func (g *CategoryGroups) Get(category string) (ShoppingCategory, bool) {
	if g == nil {
		return ShoppingCategory{}, false
	}
	sc, ok := g.byKey[category]
	if !ok {
		return ShoppingCategory{}, false
	}
	return *sc, true
}

// Categories returns the category keys in first-seen order.
func (g *CategoryGroups) Categories() []string {
	if g == nil {
		return nil
	}
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// List returns the buckets in first-seen order.
func (g *CategoryGroups) List() []ShoppingCategory {
	if g == nil {
		return nil
	}
	out := make([]ShoppingCategory, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, *g.byKey[k])
	}
	return out
}

func (g *CategoryGroups) Len() int {
	if g == nil {
		return 0
	}
	return len(g.order)
}

// MarshalJSON writes an object whose keys follow first-seen order.
func (g *CategoryGroups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if g != nil {
		for i, k := range g.order {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(g.byKey[k])
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
