package grocery

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/platform/apierr"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

// DefaultGrams is the quantity used when a unit cannot be converted.
const DefaultGrams = 100.0

// ErrConversion marks a quantity that could not be expressed in grams.
var ErrConversion = errors.New("unit conversion failed")

// UnitConverter converts an amount of a named ingredient between units.
type UnitConverter interface {
	Convert(ctx context.Context, ingredientName string, amount float64, from, to string) (float64, error)
}

// FallbackRecorder counts quantities replaced by the default.
type FallbackRecorder interface {
	ConversionFallback(unit string)
}

type Consolidator struct {
	log          *logger.Logger
	conv         UnitConverter
	names        FactLookup
	defaultGrams float64
	rec          FallbackRecorder
}

type ConsolidatorOption func(*Consolidator)

func WithDefaultGrams(g float64) ConsolidatorOption {
	return func(c *Consolidator) {
		if g > 0 {
			c.defaultGrams = g
		}
	}
}

func WithFallbackRecorder(r FallbackRecorder) ConsolidatorOption {
	return func(c *Consolidator) { c.rec = r }
}

// NewConsolidator builds a consolidator that converts through conv and resolves
// ingredient names through names.
func NewConsolidator(log *logger.Logger, conv UnitConverter, names FactLookup, opts ...ConsolidatorOption) *Consolidator {
	if log == nil {
		log = logger.Nop()
	}
	c := &Consolidator{
		log:          log.With("component", "ShoppingListConsolidator"),
		conv:         conv,
		names:        names,
		defaultGrams: DefaultGrams,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Consolidate expresses every entry in grams, rounds each quantity up and
// merges entries sharing an ingredient id. The result keeps first-seen order.
// Entries are processed one at a time. A failed conversion falls back to the
// default quantity. Only a cancelled context or a quantity that is not a
// finite number fails the call.
func (c *Consolidator) Consolidate(ctx context.Context, entries []domain.ShoppingListEntry) ([]domain.ShoppingListEntry, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "grocery.Consolidate")
	defer span.End()
	span.SetAttributes(attribute.Int("entries.count", len(entries)))

	out := make([]domain.ShoppingListEntry, 0, len(entries))
	index := make(map[int]int, len(entries))
	names := make(map[int]string)
	fallbacks := 0

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		grams, err := c.toGrams(ctx, e, names)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			fallbacks++
			c.log.Warn("unit conversion failed, using default quantity",
				"ingredient_id", e.IngredientID,
				"quantity", e.Quantity,
				"unit", e.Measure,
				"default_grams", c.defaultGrams,
				"error", err,
			)
			if c.rec != nil {
				c.rec.ConversionFallback(normalizeUnit(e.Measure))
			}
			grams = c.defaultGrams
		}
		grams = math.Ceil(grams)
		if !finite(grams) {
			return nil, apierr.Invalid("quantity of ingredient %d is not a finite number", e.IngredientID)
		}

		if i, ok := index[e.IngredientID]; ok {
			sum := out[i].Quantity + grams
			if !finite(sum) {
				return nil, apierr.Invalid("total quantity of ingredient %d overflows", e.IngredientID)
			}
			out[i].Quantity = sum
			continue
		}
		index[e.IngredientID] = len(out)
		out = append(out, domain.ShoppingListEntry{
			IngredientID: e.IngredientID,
			Quantity:     grams,
			Measure:      CanonicalUnit,
		})
	}

	span.SetAttributes(
		attribute.Int("entries.merged", len(out)),
		attribute.Int("conversion.fallbacks", fallbacks),
	)
	return out, nil
}

func (c *Consolidator) toGrams(ctx context.Context, e domain.ShoppingListEntry, names map[int]string) (float64, error) {
	unit := normalizeUnit(e.Measure)
	if IsCanonicalUnit(unit) || e.Quantity <= 0 {
		return math.Max(e.Quantity, 0), nil
	}
	if c.conv == nil {
		return 0, fmt.Errorf("%w: no converter configured", ErrConversion)
	}
	name, err := c.ingredientName(ctx, e.IngredientID, names)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	grams, err := c.conv.Convert(ctx, name, e.Quantity, unit, CanonicalUnit)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	if !finite(grams) || grams < 0 {
		return 0, fmt.Errorf("%w: converter returned %v", ErrConversion, grams)
	}
	return grams, nil
}

func (c *Consolidator) ingredientName(ctx context.Context, id int, cache map[int]string) (string, error) {
	if name, ok := cache[id]; ok {
		return name, nil
	}
	if c.names == nil {
		return "", errors.New("no ingredient lookup configured")
	}
	fact, err := c.names.GetIngredient(ctx, id)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(fact.Name) == "" {
		return "", fmt.Errorf("ingredient %d has no name", id)
	}
	cache[id] = fact.Name
	return fact.Name, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func normalizeUnit(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}
