package app

import (
	"fmt"
	"strings"

	"github.com/yungbote/mealplan-gateway/internal/clients/breaker"
	"github.com/yungbote/mealplan-gateway/internal/clients/dbadapter"
	"github.com/yungbote/mealplan-gateway/internal/clients/geoshops"
	"github.com/yungbote/mealplan-gateway/internal/clients/redis"
	"github.com/yungbote/mealplan-gateway/internal/clients/spoonacular"
	"github.com/yungbote/mealplan-gateway/internal/config"
	"github.com/yungbote/mealplan-gateway/internal/observability"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

type Clients struct {
	DB          dbadapter.Client
	Spoonacular spoonacular.Client
	GeoShops    geoshops.Client
	FactCache   redis.FactCache
}

func wireClients(log *logger.Logger, cfg *config.Config, metrics *observability.Metrics) (Clients, error) {
	log.Info("Wiring clients...")

	timeout := cfg.Collaborators.Timeout.Duration
	breakerCfg := breaker.Config{
		MaxFailures:   cfg.Breaker.MaxFailures,
		OpenTimeout:   cfg.Breaker.OpenTimeout.Duration,
		HalfOpenMax:   cfg.Breaker.HalfOpenMax,
		OnStateChange: metrics.BreakerStateChanged,
	}

	db, err := dbadapter.New(log, dbadapter.Config{
		BaseURL:  cfg.Collaborators.DBAdapterURL,
		Timeout:  timeout,
		Breaker:  breakerCfg,
		Observer: metrics,
	})
	if err != nil {
		return Clients{}, fmt.Errorf("init db adapter client: %w", err)
	}

	recipes, err := spoonacular.New(log, spoonacular.Config{
		BaseURL:  cfg.Collaborators.SpoonacularAdapterURL,
		Timeout:  timeout,
		Breaker:  breakerCfg,
		Observer: metrics,
	})
	if err != nil {
		return Clients{}, fmt.Errorf("init spoonacular client: %w", err)
	}

	shops, err := geoshops.New(log, geoshops.Config{
		BaseURL:  cfg.Collaborators.GeoShopsURL,
		Timeout:  timeout,
		Breaker:  breakerCfg,
		Observer: metrics,
	})
	if err != nil {
		return Clients{}, fmt.Errorf("init geo shops client: %w", err)
	}

	// Redis
	var cache redis.FactCache
	if strings.TrimSpace(cfg.Cache.RedisAddr) != "" {
		c, err := redis.NewFactCache(log, redis.Config{
			Addr:      cfg.Cache.RedisAddr,
			KeyPrefix: cfg.Cache.KeyPrefix,
			TTL:       cfg.Cache.FactTTL.Duration,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis fact cache: %w", err)
		}
		cache = c
	}

	return Clients{
		DB:          db,
		Spoonacular: recipes,
		GeoShops:    shops,
		FactCache:   cache,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.FactCache != nil {
		_ = c.FactCache.Close()
	}
}
