package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	ProfileStoreRedis    = "redis"
	ProfileStorePostgres = "postgres"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// front end origins allowed by CORS
	AllowedOrigins []string `toml:"allowed_origins"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// storage
	ProfileStore   string `toml:"profile_store"`
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// plan generation
	GeminiModel         string `toml:"gemini_model"`
	GeminiBaseURL       string `toml:"gemini_base_url"`
	PlanFetchTimeoutSec int    `toml:"plan_fetch_timeout_sec"`
	PlanRateLimitPerMin int    `toml:"plan_rate_limit_per_min"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
}

func (c *Config) PlanFetchTimeout() time.Duration {
	return time.Duration(c.PlanFetchTimeoutSec) * time.Second
}

func (c *Config) Validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	switch c.ProfileStore {
	case ProfileStoreRedis, ProfileStorePostgres:
	default:
		return fmt.Errorf("unknown profile store: %q", c.ProfileStore)
	}
	if c.PlanRateLimitPerMin < 0 {
		return errors.New("plan rate limit cannot be negative")
	}
	return nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the section for env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}
	return fromToml(&t, env)
}

func Parse(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}
	if cfg.ProfileStore == "" {
		cfg.ProfileStore = ProfileStoreRedis
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
