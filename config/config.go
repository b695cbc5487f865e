package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is not set.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

const ConfigPathEnvVar = "CONFIG_PATH"

const (
	VerifierTrust  = "trust"
	VerifierStripe = "stripe"
)

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Grant      GrantConfig      `koanf:"grant"`
	Payment    PaymentConfig    `koanf:"payment"`
	Cloudinary CloudinaryConfig `koanf:"cloudinary"`
	RateLimit  RateLimitConfig  `koanf:"rate_limit"`
	Logging    LoggingConfig    `koanf:"logging"`
}

type ServerConfig struct {
	Port        int      `koanf:"port"`
	Environment string   `koanf:"environment"`
	CORSOrigins []string `koanf:"cors_origins"`
}

type DatabaseConfig struct {
	// URL empty means the in-memory store is used.
	URL         string `koanf:"url"`
	AutoMigrate bool   `koanf:"auto_migrate"`
	SeedDemo    bool   `koanf:"seed_demo"`
}

type GrantConfig struct {
	Secret       string        `koanf:"secret"`
	TTL          time.Duration `koanf:"ttl"`
	CookiePrefix string        `koanf:"cookie_prefix"`
}

type PaymentConfig struct {
	Verifier              string        `koanf:"verifier"`
	ProjectID             string        `koanf:"project_id"`
	BaseMerchantAddress   string        `koanf:"base_merchant_address"`
	SolanaMerchantAddress string        `koanf:"solana_merchant_address"`
	SimulatedDelay        time.Duration `koanf:"simulated_delay"`
	StripeSecretKey       string        `koanf:"stripe_secret_key"`
	BreakerTimeout        time.Duration `koanf:"breaker_timeout"`
	BreakerFailures       uint32        `koanf:"breaker_failures"`
}

type CloudinaryConfig struct {
	CloudName string `koanf:"cloud_name"`
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
	Folder    string `koanf:"folder"`
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Disabled bool          `koanf:"disabled"`
}

type LoggingConfig struct {
	Level string `koanf:"level"`
	File  string `koanf:"file"`
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Environment: "development",
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			AutoMigrate: true,
		},
		Grant: GrantConfig{
			TTL:          7 * 24 * time.Hour,
			CookiePrefix: "access-",
		},
		Payment: PaymentConfig{
			Verifier:        VerifierTrust,
			ProjectID:       "demo-project",
			SimulatedDelay:  1500 * time.Millisecond,
			BreakerTimeout:  30 * time.Second,
			BreakerFailures: 5,
		},
		Cloudinary: CloudinaryConfig{
			Folder: "thumbnails",
		},
		RateLimit: RateLimitConfig{
			Requests: 30,
			Window:   time.Minute,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads .env, then layers defaults, an optional YAML file and the
// environment (highest priority), and validates the server settings.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadClient reads the same sources as Load but only checks the settings a
// buyer process uses, so server-only requirements such as the grant secret
// do not apply.
func LoadClient() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateClient(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := splitCommaList(k, "server.cors_origins"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func splitCommaList(k *koanf.Koanf, path string) error {
	raw, ok := k.Get(path).(string)
	if !ok || raw == "" {
		return nil
	}
	var values []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	if err := k.Set(path, values); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}

// envMappings maps the flat variable names used in deployments to config paths.
var envMappings = map[string]string{
	"port":                    "server.port",
	"node_env":                "server.environment",
	"environment":             "server.environment",
	"cors_origins":            "server.cors_origins",
	"db_url":                  "database.url",
	"database_url":            "database.url",
	"db_auto_migrate":         "database.auto_migrate",
	"seed_demo":               "database.seed_demo",
	"grant_secret":            "grant.secret",
	"grant_ttl":               "grant.ttl",
	"grant_cookie_prefix":     "grant.cookie_prefix",
	"payment_verifier":        "payment.verifier",
	"x402_project_id":         "payment.project_id",
	"base_merchant_address":   "payment.base_merchant_address",
	"solana_merchant_address": "payment.solana_merchant_address",
	"payment_simulated_delay": "payment.simulated_delay",
	"stripe_secret_key":       "payment.stripe_secret_key",
	"stripe_breaker_timeout":  "payment.breaker_timeout",
	"stripe_breaker_failures": "payment.breaker_failures",
	"cloudinary_cloud_name":   "cloudinary.cloud_name",
	"cloudinary_api_key":      "cloudinary.api_key",
	"cloudinary_api_secret":   "cloudinary.api_secret",
	"cloudinary_folder":       "cloudinary.folder",
	"rate_limit_requests":     "rate_limit.requests",
	"rate_limit_window":       "rate_limit.window",
	"rate_limit_disabled":     "rate_limit.disabled",
	"log_level":               "logging.level",
	"log_file":                "logging.file",
}

// envTransformFunc drops every variable that is not a known setting so
// unrelated environment does not leak into the config tree.
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Grant.TTL <= 0 {
		return errors.New("grant ttl must be positive")
	}
	if c.Grant.CookiePrefix == "" {
		return errors.New("grant cookie prefix is required")
	}
	if c.Grant.Secret == "" && c.IsProduction() {
		return errors.New("GRANT_SECRET is required in production")
	}
	switch c.Payment.Verifier {
	case VerifierTrust:
	case VerifierStripe:
		if c.Payment.StripeSecretKey == "" {
			return errors.New("STRIPE_SECRET_KEY is required with the stripe verifier")
		}
	default:
		return fmt.Errorf("unknown payment verifier %q", c.Payment.Verifier)
	}
	if c.RateLimit.Requests <= 0 && !c.RateLimit.Disabled {
		return errors.New("rate limit requests must be positive")
	}
	return nil
}

func (c *Config) ValidateClient() error {
	if c.Payment.SimulatedDelay < 0 {
		return errors.New("payment simulated delay must not be negative")
	}
	if c.Payment.ProjectID == "" {
		return errors.New("X402_PROJECT_ID is required")
	}
	return nil
}
