package redis

import (
	"context"

	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

// FactSource is the uncached ingredient lookup.
type FactSource interface {
	GetIngredient(ctx context.Context, id int) (domain.IngredientFact, error)
}

// CacheObserver counts cache hits and misses.
type CacheObserver interface {
	FactCacheResult(hit bool)
}

// CachedLookup serves ingredient facts from the cache and falls back to the
// source. Cache errors are logged and never fail a lookup.
type CachedLookup struct {
	log   *logger.Logger
	next  FactSource
	cache FactCache
	obs   CacheObserver
}

func NewCachedLookup(log *logger.Logger, next FactSource, cache FactCache, obs CacheObserver) *CachedLookup {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedLookup{
		log:   log.With("service", "CachedFactLookup"),
		next:  next,
		cache: cache,
		obs:   obs,
	}
}

func (l *CachedLookup) GetIngredient(ctx context.Context, id int) (domain.IngredientFact, error) {
	if l.cache != nil {
		fact, ok, err := l.cache.Get(ctx, id)
		if err != nil {
			l.log.Warn("fact cache read failed", "ingredient_id", id, "error", err)
		}
		if ok {
			l.observe(true)
			return fact, nil
		}
	}
	l.observe(false)

	fact, err := l.next.GetIngredient(ctx, id)
	if err != nil {
		return domain.IngredientFact{}, err
	}
	if l.cache != nil {
		if err := l.cache.Set(ctx, id, fact); err != nil {
			l.log.Warn("fact cache write failed", "ingredient_id", id, "error", err)
		}
	}
	return fact, nil
}

func (l *CachedLookup) observe(hit bool) {
	if l.obs != nil {
		l.obs.FactCacheResult(hit)
	}
}
