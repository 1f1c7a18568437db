package config

import "time"

type Duration struct {
	Duration time.Duration
}

type HTTPConfig struct {
	Addr              string   `yaml:"addr"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout"`
	IdleTimeout       Duration `yaml:"idle_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout"`
	MaxRequestBytes   int64    `yaml:"max_request_bytes"`

	// RateLimit is requests per second across the API group; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`

	CORSOrigins []string `yaml:"cors_origins"`
}

type CollaboratorsConfig struct {
	DBAdapterURL          string   `yaml:"db_adapter_url"`
	SpoonacularAdapterURL string   `yaml:"spoonacular_adapter_url"`
	GeoShopsURL           string   `yaml:"geo_shops_url"`
	Timeout               Duration `yaml:"timeout"`
}

type BreakerConfig struct {
	MaxFailures uint32   `yaml:"max_failures"`
	OpenTimeout Duration `yaml:"open_timeout"`
	HalfOpenMax uint32   `yaml:"half_open_max"`
}

type GroceryConfig struct {
	// LookupConcurrency bounds the ingredient fact fan-out per request.
	LookupConcurrency int `yaml:"lookup_concurrency"`
	// DefaultGrams replaces a quantity whose unit could not be converted.
	DefaultGrams float64 `yaml:"default_grams"`
}

type CacheConfig struct {
	RedisAddr string   `yaml:"redis_addr"`
	KeyPrefix string   `yaml:"key_prefix"`
	FactTTL   Duration `yaml:"fact_ttl"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type Config struct {
	Env           string              `yaml:"env"`
	Version       string              `yaml:"-"`
	HTTP          HTTPConfig          `yaml:"http"`
	Collaborators CollaboratorsConfig `yaml:"collaborators"`
	Breaker       BreakerConfig       `yaml:"breaker"`
	Grocery       GroceryConfig       `yaml:"grocery"`
	Cache         CacheConfig         `yaml:"cache"`
	Metrics       MetricsConfig       `yaml:"metrics"`
	Tracing       TracingConfig       `yaml:"tracing"`
}
