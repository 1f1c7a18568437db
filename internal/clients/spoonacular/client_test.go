package spoonacular

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/mealplan-gateway/internal/clients/breaker"
	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/grocery"
	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

func newClient(t *testing.T, mux *http.ServeMux) Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c, err := New(logger.Nop(), Config{BaseURL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestGetIngredientFoldsTags(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ingredient/1001", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"id":           1001,
			"name":         " butter ",
			"categoryPath": []string{"Butter", " DAIRY ", ""},
		})
	})
	c := newClient(t, mux)

	fact, err := c.GetIngredient(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, domain.IngredientFact{ID: 1001, Name: "butter", CategoryPath: []string{"butter", "dairy"}}, fact)
}

func TestGetIngredientWithoutPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ingredient/7", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"name": "water"})
	})
	fact, err := newClient(t, mux).GetIngredient(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, fact.ID)
	assert.Nil(t, fact.CategoryPath)
	assert.False(t, fact.Classifiable())
}

func TestGetIngredientErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ingredient/404", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/ingredient/500", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	c := newClient(t, mux)

	_, err := c.GetIngredient(context.Background(), 404)
	assert.True(t, apierr.IsCode(err, apierr.CodeNotFound))

	_, err = c.GetIngredient(context.Background(), 500)
	assert.True(t, apierr.IsCode(err, apierr.CodeCollaboratorUnavailable))
	assert.Contains(t, err.Error(), "recipe provider")
}

func TestConvert(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/convert", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "flour", q.Get("ingredientName"))
		assert.Equal(t, "2.5", q.Get("sourceAmount"))
		assert.Equal(t, "cups", q.Get("sourceUnit"))
		assert.Equal(t, "g", q.Get("targetUnit"))
		writeJSON(w, map[string]any{"sourceAmount": 2.5, "sourceUnit": "cups", "targetAmount": 312.5, "targetUnit": "g"})
	})
	grams, err := newClient(t, mux).Convert(context.Background(), "flour", 2.5, "cups", "g")
	require.NoError(t, err)
	assert.InDelta(t, 312.5, grams, 1e-9)
}

func TestConvertReportsProviderError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/convert", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"error": "cannot convert cup of salt"})
	})
	_, err := newClient(t, mux).Convert(context.Background(), "salt", 1, "cup", "g")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot convert")
}

func TestConvertWithoutAmount(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/convert", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"answer": "?"})
	})
	_, err := newClient(t, mux).Convert(context.Background(), "salt", 1, "cup", "g")
	assert.Error(t, err)
}

func TestRandomRecipes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/recipe", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "vegan", r.URL.Query().Get("diet"))
		assert.Equal(t, "2", r.URL.Query().Get("n"))
		writeJSON(w, []map[string]any{
			{"id": 1, "title": "Chili", "vegan": true, "ingredients": []map[string]any{
				{"id": 11, "name": "beans", "measures": map[string]any{"metric": map[string]any{"amount": 200, "unitShort": "g", "unitLong": "grams"}}},
			}},
			{"id": 2, "title": "Curry", "vegan": true},
		})
	})
	recipes, err := newClient(t, mux).RandomRecipes(context.Background(), "vegan", 2)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Chili", recipes[0].Title)
	require.Len(t, recipes[0].Ingredients, 1)
	assert.InDelta(t, 200, recipes[0].Ingredients[0].Measures.Metric.Amount, 1e-9)
}

func TestSearchAndDetails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/recipes/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pasta", r.URL.Query().Get("query"))
		writeJSON(w, []map[string]any{{"id": 5, "title": "Pasta"}})
	})
	mux.HandleFunc("/recipe/5", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"id": 5, "title": "Pasta", "servings": 2})
	})
	c := newClient(t, mux)

	found, err := c.SearchRecipes(context.Background(), "pasta", "omni", 1)
	require.NoError(t, err)
	require.Len(t, found, 1)

	r, err := c.GetRecipe(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Servings)

	_, err = c.GetRecipe(context.Background(), 6)
	assert.True(t, apierr.IsCode(err, apierr.CodeNotFound))
}

func TestFailedGroupingLeavesConversionsWorking(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/ingredient/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ingredient/1" {
			http.NotFound(w, r)
			return
		}
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	mux.HandleFunc("/convert", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"targetAmount": 2000, "targetUnit": "g"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })
	c, err := New(logger.Nop(), Config{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
		Breaker: breaker.Config{MaxFailures: 5, OpenTimeout: time.Minute},
	})
	require.NoError(t, err)

	agg := grocery.NewAggregator(nil, c, 8)
	_, err = agg.Aggregate(context.Background(), []domain.IngredientRef{
		{IngredientID: 2}, {IngredientID: 3}, {IngredientID: 4}, {IngredientID: 5},
		{IngredientID: 6}, {IngredientID: 7}, {IngredientID: 1},
	})
	require.True(t, apierr.IsCode(err, apierr.CodeNotFound))

	names := staticNames{9: "flour"}
	got, err := grocery.NewConsolidator(nil, c, names).Consolidate(context.Background(), []domain.ShoppingListEntry{
		{IngredientID: 9, Quantity: 2, Measure: "kg"},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.ShoppingListEntry{{IngredientID: 9, Quantity: 2000, Measure: "g"}}, got)
}

type staticNames map[int]string

func (s staticNames) GetIngredient(_ context.Context, id int) (domain.IngredientFact, error) {
	return domain.IngredientFact{ID: id, Name: s[id]}, nil
}
