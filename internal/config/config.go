// Package config loads and validates application configuration.
//
// Configuration comes from a YAML file with environment-variable overrides
// on top; a .env file is honored for local development. Secrets (ESP keys,
// database URL) should always arrive via the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Sender    SenderConfig    `yaml:"sender"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	SES       SESConfig       `yaml:"ses"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// GetHost returns the bind host, defaulting to localhost.
func (c ServerConfig) GetHost() string {
	if c.Host == "" {
		return "localhost"
	}
	return c.Host
}

// SenderConfig selects and parameterizes the outbound ESP.
type SenderConfig struct {
	Provider  string `yaml:"provider"` // "sendgrid" or "ses"
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// SendGridConfig holds SendGrid API settings.
type SendGridConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// SESConfig holds AWS SES credentials.
type SESConfig struct {
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
}

// DatabaseConfig holds the Postgres connection string. Empty means the
// in-memory store (data does not survive a restart).
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig holds the optional Redis connection for change notifications.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// AnalyticsConfig tunes the dashboard snapshot collector.
type AnalyticsConfig struct {
	RecomputeIntervalSeconds int `yaml:"recompute_interval_seconds"`
}

// Interval returns the collector's safety-net recompute interval.
func (c AnalyticsConfig) Interval() time.Duration {
	return time.Duration(c.RecomputeIntervalSeconds) * time.Second
}

// Load reads and parses the configuration file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Sender.Provider == "" {
		cfg.Sender.Provider = "sendgrid"
	}
	if cfg.SendGrid.BaseURL == "" {
		cfg.SendGrid.BaseURL = "https://api.sendgrid.com/v3"
	}
	if cfg.SES.Region == "" {
		cfg.SES.Region = "us-east-1"
	}
	if cfg.Analytics.RecomputeIntervalSeconds == 0 {
		cfg.Analytics.RecomputeIntervalSeconds = 30
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// It loads a .env file first (if present) so secrets can live in .env
// locally and in real env vars in deployment. A missing config file is not
// an error: env vars plus defaults are a complete configuration.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if os.IsNotExist(err) {
		cfg = &Config{}
		cfg.applyDefaults()
	} else if err != nil {
		return nil, err
	}

	if v := os.Getenv("SENDGRID_API_KEY"); v != "" {
		cfg.SendGrid.APIKey = v
	}
	if v := os.Getenv("SENDGRID_BASE_URL"); v != "" {
		cfg.SendGrid.BaseURL = v
	}
	if v := os.Getenv("AWS_SES_ACCESS_KEY"); v != "" {
		cfg.SES.AccessKey = v
	}
	if v := os.Getenv("AWS_SES_SECRET_KEY"); v != "" {
		cfg.SES.SecretKey = v
	}
	if v := os.Getenv("AWS_SES_REGION"); v != "" {
		cfg.SES.Region = v
	}
	if v := os.Getenv("SENDER_PROVIDER"); v != "" {
		cfg.Sender.Provider = v
	}
	if v := os.Getenv("SENDER_FROM_EMAIL"); v != "" {
		cfg.Sender.FromEmail = v
	}
	if v := os.Getenv("SENDER_FROM_NAME"); v != "" {
		cfg.Sender.FromName = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}

	return cfg, nil
}

// Validate checks that the send path can initialize. A missing credential
// for the selected provider is fatal at startup: the send handler must never
// come up half-configured.
func (cfg *Config) Validate() error {
	if cfg.Sender.FromEmail == "" {
		return fmt.Errorf("sender.from_email is required (set SENDER_FROM_EMAIL)")
	}
	switch cfg.Sender.Provider {
	case "sendgrid":
		if cfg.SendGrid.APIKey == "" {
			return fmt.Errorf("missing SENDGRID_API_KEY in environment variables")
		}
	case "ses":
		if cfg.SES.AccessKey == "" || cfg.SES.SecretKey == "" {
			return fmt.Errorf("missing AWS_SES_ACCESS_KEY / AWS_SES_SECRET_KEY in environment variables")
		}
	default:
		return fmt.Errorf("unknown sender provider %q", cfg.Sender.Provider)
	}
	return nil
}
