package grocery

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

const tracerName = "github.com/yungbote/mealplan-gateway/internal/grocery"

// FactLookup resolves an ingredient id to its name and category path.
type FactLookup interface {
	GetIngredient(ctx context.Context, id int) (domain.IngredientFact, error)
}

type Aggregator struct {
	log    *logger.Logger
	lookup FactLookup
	limit  int
}

func NewAggregator(log *logger.Logger, lookup FactLookup, concurrency int) *Aggregator {
	if log == nil {
		log = logger.Nop()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Aggregator{
		log:    log.With("component", "IngredientAggregator"),
		lookup: lookup,
		limit:  concurrency,
	}
}

// Aggregate looks up every ingredient and groups the classifiable ones by
// shopping category. Lookups run concurrently; the first failure cancels the
// rest and no partial result is returned.
func (a *Aggregator) Aggregate(ctx context.Context, refs []domain.IngredientRef) (*domain.CategoryGroups, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "grocery.Aggregate")
	defer span.End()
	span.SetAttributes(attribute.Int("ingredients.count", len(refs)))

	facts := make([]domain.IngredientFact, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.limit)
	for i, ref := range refs {
		g.Go(func() error {
			fact, err := a.lookup.GetIngredient(gctx, ref.IngredientID)
			if err != nil {
				return fmt.Errorf("lookup ingredient %d: %w", ref.IngredientID, err)
			}
			facts[i] = fact
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fact lookup failed")
		return nil, err
	}

	groups := Group(facts)
	if dropped := len(refs) - countIngredients(groups); dropped > 0 {
		a.log.Debug("dropped unclassifiable ingredients", "count", dropped)
	}
	span.SetAttributes(attribute.Int("categories.count", groups.Len()))
	return groups, nil
}

// Group buckets facts by category in input order, skipping facts without a
// name or category path.
func Group(facts []domain.IngredientFact) *domain.CategoryGroups {
	groups := domain.NewCategoryGroups()
	for _, f := range facts {
		if !f.Classifiable() {
			continue
		}
		groups.Add(Classify(f.CategoryPath), f)
	}
	return groups
}

func countIngredients(g *domain.CategoryGroups) int {
	n := 0
	for _, sc := range g.List() {
		n += len(sc.Ingredients)
	}
	return n
}
