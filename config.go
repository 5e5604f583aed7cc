package aegisweb

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// App environments, matching AEGISCAN__APP_ENV on the platform services.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Environment variables that override the YAML file.
const (
	envAppEnv             = "AEGISCAN__APP_ENV"
	envAddr               = "AEGISCAN__WEB_ADDR"
	envStaticDir          = "AEGISCAN__WEB_STATIC_DIR"
	envAnalyticsEnabled   = "AEGISCAN__WEB_ANALYTICS_ENABLED"
	envAnalyticsDB        = "AEGISCAN__WEB_ANALYTICS_DB"
	envAnalyticsRetention = "AEGISCAN__WEB_ANALYTICS_RETENTION_DAYS"
	envAPIRateLimit       = "AEGISCAN__WEB_API_RATE_LIMIT"
)

// ServerConfig holds the runtime settings of the web shell. Site identity
// (name, URLs, links) is not part of it; that comes from package site.
type ServerConfig struct {
	Addr      string `yaml:"addr"`       // Listen address (default ":3000")
	AppEnv    string `yaml:"app_env"`    // development, staging or production
	StaticDir string `yaml:"static_dir"` // User-owned static assets (default "public")

	AnalyticsEnabled       bool   `yaml:"analytics_enabled"`        // Page view counting (default true)
	AnalyticsDatabasePath  string `yaml:"analytics_database_path"`  // SQLite path (default "data/analytics.db")
	AnalyticsRetentionDays int    `yaml:"analytics_retention_days"` // default 365

	APIRateLimit    int           `yaml:"api_rate_limit"`   // Requests per IP per minute on /api/ (default 60)
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // Graceful shutdown budget (default 10s)
}

// DefaultServerConfig returns the configuration used when nothing is set.
func DefaultServerConfig() ServerConfig {
	c := ServerConfig{AnalyticsEnabled: true}
	c.setDefaults()
	return c
}

func (c *ServerConfig) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.AppEnv == "" {
		c.AppEnv = EnvDevelopment
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.AnalyticsRetentionDays == 0 {
		c.AnalyticsRetentionDays = 365
	}
	if c.APIRateLimit == 0 {
		c.APIRateLimit = 60
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

// Validate reports the first invalid setting.
func (c ServerConfig) Validate() error {
	switch c.AppEnv {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		return fmt.Errorf("aegisweb: unknown app env %q", c.AppEnv)
	}
	if c.AnalyticsRetentionDays < 0 {
		return errors.New("aegisweb: analytics retention days must not be negative")
	}
	if c.APIRateLimit < 0 {
		return errors.New("aegisweb: api rate limit must not be negative")
	}
	return nil
}

// Production reports whether the shell runs with production hardening.
func (c ServerConfig) Production() bool {
	return c.AppEnv == EnvProduction
}

// LoadServerConfig reads the optional YAML file at path, applies environment
// overrides from lookup, fills defaults and validates the result.
func LoadServerConfig(path string, lookup func(string) (string, bool)) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("aegisweb: read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return ServerConfig{}, fmt.Errorf("aegisweb: parse config %s: %w", path, err)
		}
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return ServerConfig{}, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *ServerConfig, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str(envAppEnv, &cfg.AppEnv)
	str(envAddr, &cfg.Addr)
	str(envStaticDir, &cfg.StaticDir)
	str(envAnalyticsDB, &cfg.AnalyticsDatabasePath)

	if v, ok := lookup(envAnalyticsEnabled); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("aegisweb: %s: %w", envAnalyticsEnabled, err)
		}
		cfg.AnalyticsEnabled = b
	}
	for key, dst := range map[string]*int{
		envAnalyticsRetention: &cfg.AnalyticsRetentionDays,
		envAPIRateLimit:       &cfg.APIRateLimit,
	} {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("aegisweb: %s: %w", key, err)
			}
			*dst = n
		}
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are mounted.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir overrides the directory for user-owned static assets.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
