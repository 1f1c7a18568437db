package spoonacular

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/yungbote/mealplan-gateway/internal/clients/breaker"
	"github.com/yungbote/mealplan-gateway/internal/clients/transport"
	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

const collaborator = "recipe provider"

// Client talks to the recipe/ingredient adapter. It serves as both the
// ingredient fact lookup and the unit converter.
type Client interface {
	GetIngredient(ctx context.Context, id int) (domain.IngredientFact, error)
	Convert(ctx context.Context, ingredientName string, amount float64, from, to string) (float64, error)
	RandomRecipes(ctx context.Context, diet string, n int) ([]domain.Recipe, error)
	SearchRecipes(ctx context.Context, query, diet string, n int) ([]domain.Recipe, error)
	GetRecipe(ctx context.Context, id int) (domain.Recipe, error)
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Breaker    breaker.Config
	HTTPClient *http.Client
	Observer   transport.CallObserver
}

type client struct {
	log *logger.Logger
	tc  *transport.Client
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	tc, err := transport.New(log, transport.Config{
		Name:       "spoonacular",
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		Breaker:    cfg.Breaker,
		HTTPClient: cfg.HTTPClient,
		Observer:   cfg.Observer,
	})
	if err != nil {
		return nil, err
	}
	return &client{log: log.With("client", "SpoonacularClient"), tc: tc}, nil
}

type ingredientResponse struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	CategoryPath []string `json:"categoryPath"`
}

func (c *client) GetIngredient(ctx context.Context, id int) (domain.IngredientFact, error) {
	raw, err := transport.DoJSON[ingredientResponse](c.tc, ctx, "get_ingredient", http.MethodGet, "/ingredient/"+strconv.Itoa(id), nil, nil)
	if err != nil {
		return domain.IngredientFact{}, mapErr(err, fmt.Sprintf("ingredient %d", id))
	}
	fact := domain.IngredientFact{ID: raw.ID, Name: strings.TrimSpace(raw.Name)}
	if fact.ID == 0 {
		fact.ID = id
	}
	if len(raw.CategoryPath) > 0 {
		fact.CategoryPath = foldTags(raw.CategoryPath)
	}
	return fact, nil
}

// foldTags case-folds and trims provider tags so they match the priority table.
// A Caser keeps state, so each call builds its own.
func foldTags(tags []string) []string {
	caser := cases.Fold()
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(caser.String(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

type convertResponse struct {
	SourceAmount float64  `json:"sourceAmount"`
	SourceUnit   string   `json:"sourceUnit"`
	TargetAmount *float64 `json:"targetAmount"`
	TargetUnit   string   `json:"targetUnit"`
	Answer       string   `json:"answer"`
	Error        any      `json:"error"`
}

func (c *client) Convert(ctx context.Context, ingredientName string, amount float64, from, to string) (float64, error) {
	q := url.Values{}
	q.Set("ingredientName", ingredientName)
	q.Set("sourceAmount", strconv.FormatFloat(amount, 'f', -1, 64))
	q.Set("sourceUnit", from)
	q.Set("targetUnit", to)
	raw, err := transport.DoJSON[convertResponse](c.tc, ctx, "convert", http.MethodGet, "/convert", q, nil)
	if err != nil {
		return 0, mapErr(err, "conversion")
	}
	if raw.Error != nil {
		return 0, fmt.Errorf("convert %v %s of %q to %s: %v", amount, from, ingredientName, to, raw.Error)
	}
	if raw.TargetAmount == nil {
		return 0, fmt.Errorf("convert %v %s of %q to %s: no target amount", amount, from, ingredientName, to)
	}
	return *raw.TargetAmount, nil
}

func (c *client) RandomRecipes(ctx context.Context, diet string, n int) ([]domain.Recipe, error) {
	q := url.Values{}
	q.Set("diet", diet)
	q.Set("n", strconv.Itoa(n))
	out, err := transport.DoJSON[[]domain.Recipe](c.tc, ctx, "random_recipes", http.MethodGet, "/recipe", q, nil)
	if err != nil {
		return nil, mapErr(err, "recipes")
	}
	return out, nil
}

func (c *client) SearchRecipes(ctx context.Context, query, diet string, n int) ([]domain.Recipe, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("diet", diet)
	q.Set("n", strconv.Itoa(n))
	out, err := transport.DoJSON[[]domain.Recipe](c.tc, ctx, "search_recipes", http.MethodGet, "/recipes/search", q, nil)
	if err != nil {
		return nil, mapErr(err, "recipes")
	}
	return out, nil
}

func (c *client) GetRecipe(ctx context.Context, id int) (domain.Recipe, error) {
	out, err := transport.DoJSON[domain.Recipe](c.tc, ctx, "get_recipe", http.MethodGet, "/recipe/"+strconv.Itoa(id), nil, nil)
	if err != nil {
		return domain.Recipe{}, mapErr(err, fmt.Sprintf("recipe %d", id))
	}
	return out, nil
}

func mapErr(err error, what string) error {
	if errors.Is(err, transport.ErrEncode) {
		return apierr.New(http.StatusInternalServerError, apierr.CodeInternal, err)
	}
	if transport.StatusOf(err) == http.StatusNotFound {
		return apierr.NotFound(what)
	}
	return apierr.Unavailable(collaborator, err)
}
