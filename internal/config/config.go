package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// storage
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	AvatarsPath    string `toml:"avatars_path"`

	// auth
	SessionTTLHours             int      `toml:"session_ttl_hours"`
	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`
	AllowedOrigins              []string `toml:"allowed_origins"`

	// weekly summaries
	OpenAIBaseURL                 string `toml:"openai_base_url"`
	OpenAIModel                   string `toml:"openai_model"`
	OpenAITimeoutSeconds          int    `toml:"openai_timeout_seconds"`
	SummaryCacheSizeMB            int    `toml:"summary_cache_size_mb"`
	SummaryRateLimitAllowedPerMin int    `toml:"summary_rate_limit_allowed_per_min"`
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) OpenAITimeout() time.Duration {
	return time.Duration(c.OpenAITimeoutSeconds) * time.Second
}

// applyDefaults fills in the values left out from the TOML section.
func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.SessionTTLHours == 0 {
		c.SessionTTLHours = 24 * 7
	}
	if c.LoginRateLimitAllowedPerMin == 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
	if c.OpenAIBaseURL == "" {
		c.OpenAIBaseURL = "https://api.openai.com/v1"
	}
	if c.OpenAIModel == "" {
		c.OpenAIModel = "gpt-4"
	}
	if c.OpenAITimeoutSeconds == 0 {
		c.OpenAITimeoutSeconds = 60
	}
	if c.SummaryCacheSizeMB == 0 {
		c.SummaryCacheSizeMB = 10
	}
	if c.SummaryRateLimitAllowedPerMin == 0 {
		c.SummaryRateLimitAllowedPerMin = 10
	}
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env %s missing", env)
	}
	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Load reads the TOML file at path and returns the section selected by env.
func Load(env, path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path empty")
	}
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml config %s: %w", path, err)
	}
	return t.Get(env)
}
