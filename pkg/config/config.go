package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Providers struct {
		Yahoo struct {
			BaseURL string        `yaml:"base_url"`
			Timeout time.Duration `yaml:"timeout"`
		} `yaml:"yahoo"`
		Finnhub struct {
			APIKey  string        `yaml:"api_key"`
			BaseURL string        `yaml:"base_url"`
			Timeout time.Duration `yaml:"timeout"`
		} `yaml:"finnhub"`
		RetryMax    int           `yaml:"retry_max"`
		BackoffBase time.Duration `yaml:"backoff_base"`
		RateLimit   struct {
			Capacity     float64 `yaml:"capacity"`
			RefillPerSec float64 `yaml:"refill_per_sec"`
		} `yaml:"rate_limit"`
	} `yaml:"providers"`
	Analysis struct {
		QuickBudget    time.Duration `yaml:"quick_budget"`
		StandardBudget time.Duration `yaml:"standard_budget"`
		DetailedBudget time.Duration `yaml:"detailed_budget"`
		Phase2Cost     time.Duration `yaml:"phase2_cost"`
	} `yaml:"analysis"`
	Cache struct {
		SnapshotTTL time.Duration `yaml:"snapshot_ttl"`
		Redis       struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Events struct {
		Enabled        bool          `yaml:"enabled"`
		Brokers        []string      `yaml:"brokers"`
		Topic          string        `yaml:"topic"`
		Compression    string        `yaml:"compression"`
		PublishTimeout time.Duration `yaml:"publish_timeout"`
	} `yaml:"events"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		c.Providers.Finnhub.APIKey = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("EVENTS_TOPIC"); v != "" {
		c.Events.Topic = v
	}

	return c, nil
}

// applyDefaults fills zero-valued fields so a minimal YAML file still works.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Providers.Yahoo.BaseURL == "" {
		c.Providers.Yahoo.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.Providers.Yahoo.Timeout == 0 {
		c.Providers.Yahoo.Timeout = 1500 * time.Millisecond
	}
	if c.Providers.Finnhub.BaseURL == "" {
		c.Providers.Finnhub.BaseURL = "https://finnhub.io/api/v1"
	}
	if c.Providers.Finnhub.Timeout == 0 {
		c.Providers.Finnhub.Timeout = 1500 * time.Millisecond
	}
	if c.Providers.RetryMax == 0 {
		c.Providers.RetryMax = 3
	}
	if c.Providers.BackoffBase == 0 {
		c.Providers.BackoffBase = 100 * time.Millisecond
	}
	if c.Providers.RateLimit.Capacity == 0 {
		c.Providers.RateLimit.Capacity = 10
	}
	if c.Providers.RateLimit.RefillPerSec == 0 {
		c.Providers.RateLimit.RefillPerSec = 5
	}
	if c.Analysis.QuickBudget == 0 {
		c.Analysis.QuickBudget = 800 * time.Millisecond
	}
	if c.Analysis.StandardBudget == 0 {
		c.Analysis.StandardBudget = 2 * time.Second
	}
	if c.Analysis.DetailedBudget == 0 {
		c.Analysis.DetailedBudget = 4 * time.Second
	}
	if c.Analysis.Phase2Cost == 0 {
		c.Analysis.Phase2Cost = 300 * time.Millisecond
	}
	if c.Cache.SnapshotTTL == 0 {
		c.Cache.SnapshotTTL = 30 * time.Minute
	}
	if c.Cache.Redis.Port == 0 {
		c.Cache.Redis.Port = 6379
	}
	if c.Events.Topic == "" {
		c.Events.Topic = "analysis.results"
	}
	if c.Events.Compression == "" {
		c.Events.Compression = "gzip"
	}
	if c.Events.PublishTimeout == 0 {
		c.Events.PublishTimeout = 2 * time.Second
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Analysis.QuickBudget > c.Analysis.StandardBudget {
		return fmt.Errorf("analysis.quick_budget must not exceed analysis.standard_budget")
	}
	if c.Analysis.StandardBudget > c.Analysis.DetailedBudget {
		return fmt.Errorf("analysis.standard_budget must not exceed analysis.detailed_budget")
	}
	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		return fmt.Errorf("events.brokers are required when events are enabled")
	}
	if c.Cache.Redis.Enabled && c.Cache.Redis.Host == "" {
		return fmt.Errorf("cache.redis.host is required when redis is enabled")
	}
	return nil
}
