package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/platform/logger"
)

// FactCache stores ingredient facts by id.
type FactCache interface {
	Get(ctx context.Context, id int) (domain.IngredientFact, bool, error)
	Set(ctx context.Context, id int, fact domain.IngredientFact) error
	Close() error
}

type Config struct {
	Addr      string
	KeyPrefix string
	TTL       time.Duration
}

type factCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewFactCache(log *logger.Logger, cfg Config) (FactCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "gateway:fact:"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &factCache{
		log:    log.With("service", "RedisFactCache"),
		rdb:    rdb,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.TTL,
	}, nil
}

func (c *factCache) key(id int) string {
	return c.prefix + strconv.Itoa(id)
}

func (c *factCache) Get(ctx context.Context, id int) (domain.IngredientFact, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.IngredientFact{}, false, nil
	}
	if err != nil {
		return domain.IngredientFact{}, false, err
	}
	var fact domain.IngredientFact
	if err := json.Unmarshal(raw, &fact); err != nil {
		c.log.Warn("bad cached ingredient fact", "ingredient_id", id, "error", err)
		return domain.IngredientFact{}, false, nil
	}
	return fact, true, nil
}

// Set stores fact under the id it was looked up by; a zero TTL keeps it until
// evicted.
func (c *factCache) Set(ctx context.Context, id int, fact domain.IngredientFact) error {
	raw, err := json.Marshal(fact)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(id), raw, c.ttl).Err()
}

func (c *factCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
