package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/mealplan-gateway/internal/platform/envutil"
)

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a scalar, got kind %d", node.Kind)
	}
	s := strings.TrimSpace(node.Value)
	if s == "" || s == "null" || s == "~" {
		d.Duration = 0
		return nil
	}
	if node.Tag == "!!int" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		d.Duration = time.Duration(n)
		return nil
	}
	dd, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration must be a string like \"5s\" or an int nanoseconds: %w", err)
	}
	d.Duration = dd
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxRequestBytes:   1 << 20,
			RateLimit:         100,
			RateBurst:         200,
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5173",
				"http://127.0.0.1:3000",
				"http://127.0.0.1:5173",
			},
		},
		Collaborators: CollaboratorsConfig{
			DBAdapterURL:          "http://localhost:3001",
			SpoonacularAdapterURL: "http://localhost:3002",
			GeoShopsURL:           "http://localhost:3003",
			Timeout:               Duration{Duration: 10 * time.Second},
		},
		Breaker: BreakerConfig{
			MaxFailures: 5,
			OpenTimeout: Duration{Duration: 30 * time.Second},
			HalfOpenMax: 2,
		},
		Grocery: GroceryConfig{
			LookupConcurrency: 8,
			DefaultGrams:      100,
		},
		Cache: CacheConfig{
			KeyPrefix: "gateway:fact:",
			FactTTL:   Duration{Duration: 24 * time.Hour},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Tracing: TracingConfig{
			ServiceName: "mealplan-gateway",
			SampleRatio: 0.1,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the environment.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom is Load with an explicit YAML path. An empty path falls back to
// GATEWAY_CONFIG_PATH and then to config/gateway.yaml in the working directory.
func LoadFrom(path string) (*Config, error) {
	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(path)
	if cfgPath == "" {
		cfgPath = strings.TrimSpace(os.Getenv("GATEWAY_CONFIG_PATH"))
	}
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "gateway.yaml")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}
	if cfgPath != "" {
		if err := loadFile(cfgPath, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile overlays the YAML document at path onto cfg; keys absent from the file keep their defaults.
func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	if port := envutil.String("PORT", ""); port != "" {
		cfg.HTTP.Addr = ":" + port
	}
	cfg.HTTP.Addr = envutil.String("GATEWAY_HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.RateLimit = envutil.Float("RATE_LIMIT", cfg.HTTP.RateLimit)
	cfg.HTTP.RateBurst = envutil.Int("RATE_BURST", cfg.HTTP.RateBurst)
	if origins := envutil.String("CORS_ORIGINS", ""); origins != "" {
		cfg.HTTP.CORSOrigins = splitList(origins)
	}

	cfg.Collaborators.DBAdapterURL = envutil.String("INTERNAL_DB_ADAPTER_URL", cfg.Collaborators.DBAdapterURL)
	cfg.Collaborators.SpoonacularAdapterURL = envutil.String("SPOONACULAR_ADAPTER_URL", cfg.Collaborators.SpoonacularAdapterURL)
	cfg.Collaborators.GeoShopsURL = envutil.String("GEO_SHOPS_URL", cfg.Collaborators.GeoShopsURL)
	cfg.Collaborators.Timeout.Duration = envutil.Duration("COLLABORATOR_TIMEOUT", cfg.Collaborators.Timeout.Duration)

	cfg.Grocery.LookupConcurrency = envutil.Int("LOOKUP_CONCURRENCY", cfg.Grocery.LookupConcurrency)
	cfg.Grocery.DefaultGrams = envutil.Float("DEFAULT_GRAMS", cfg.Grocery.DefaultGrams)

	cfg.Cache.RedisAddr = envutil.String("REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Cache.FactTTL.Duration = envutil.Duration("FACT_CACHE_TTL", cfg.Cache.FactTTL.Duration)

	cfg.Metrics.Enabled = envutil.Bool("METRICS_ENABLED", cfg.Metrics.Enabled)
	cfg.Tracing.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Tracing.Enabled)
	cfg.Tracing.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.Tracing.SampleRatio)
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	c.Env = strings.TrimSpace(c.Env)
	if c.Env == "" {
		c.Env = "development"
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.MaxRequestBytes <= 0 {
		c.HTTP.MaxRequestBytes = 1 << 20
	}
	if c.HTTP.RateLimit < 0 {
		return fmt.Errorf("http.rate_limit must be >= 0, got %v", c.HTTP.RateLimit)
	}
	if c.HTTP.RateLimit > 0 && c.HTTP.RateBurst < 1 {
		c.HTTP.RateBurst = 1
	}

	urls := map[string]*string{
		"collaborators.db_adapter_url":          &c.Collaborators.DBAdapterURL,
		"collaborators.spoonacular_adapter_url": &c.Collaborators.SpoonacularAdapterURL,
		"collaborators.geo_shops_url":           &c.Collaborators.GeoShopsURL,
	}
	for key, ptr := range urls {
		v := strings.TrimRight(strings.TrimSpace(*ptr), "/")
		u, err := url.Parse(v)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an absolute http(s) URL, got %q", key, *ptr)
		}
		*ptr = v
	}
	if c.Collaborators.Timeout.Duration <= 0 {
		c.Collaborators.Timeout.Duration = 10 * time.Second
	}

	if c.Breaker.MaxFailures == 0 {
		c.Breaker.MaxFailures = 5
	}
	if c.Breaker.OpenTimeout.Duration <= 0 {
		c.Breaker.OpenTimeout.Duration = 30 * time.Second
	}
	if c.Breaker.HalfOpenMax == 0 {
		c.Breaker.HalfOpenMax = 1
	}

	if c.Grocery.LookupConcurrency < 1 {
		return fmt.Errorf("grocery.lookup_concurrency must be >= 1, got %d", c.Grocery.LookupConcurrency)
	}
	if c.Grocery.DefaultGrams <= 0 {
		return fmt.Errorf("grocery.default_grams must be > 0, got %v", c.Grocery.DefaultGrams)
	}

	if strings.TrimSpace(c.Cache.KeyPrefix) == "" {
		c.Cache.KeyPrefix = "gateway:fact:"
	}
	if c.Cache.FactTTL.Duration < 0 {
		return fmt.Errorf("cache.fact_ttl must be >= 0")
	}

	if strings.TrimSpace(c.Metrics.Path) == "" {
		c.Metrics.Path = "/metrics"
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		c.Metrics.Path = "/" + c.Metrics.Path
	}
	if strings.TrimSpace(c.Tracing.ServiceName) == "" {
		c.Tracing.ServiceName = "mealplan-gateway"
	}
	if c.Tracing.SampleRatio < 0 {
		c.Tracing.SampleRatio = 0
	}
	if c.Tracing.SampleRatio > 1 {
		c.Tracing.SampleRatio = 1
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
