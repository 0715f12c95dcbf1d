// Package config loads application configuration from an optional YAML
// file with environment variable overrides on top.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/apimgr/saaskit/src/database"
)

// Config is the full application configuration.
type Config struct {
	// development or production; development relaxes cookie security
	// and enables console logging.
	Mode string `yaml:"mode" env:"APP_MODE"`

	// BaseURL is the externally visible origin, used to build links in
	// outbound email.
	BaseURL string `yaml:"base_url" env:"BASE_URL"`

	Server   ServerConfig    `yaml:"server"`
	Database database.Config `yaml:"database"`
	SMTP     SMTPConfig      `yaml:"smtp"`
	Log      LogConfig       `yaml:"log"`
}

// ServerConfig holds the listen address.
type ServerConfig struct {
	Host string `yaml:"host" env:"HOST"`
	Port int    `yaml:"port" env:"PORT"`
}

// SMTPConfig holds outbound mail settings. An empty host disables mail.
type SMTPConfig struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT"`
	Username string `yaml:"username" env:"SMTP_USER"`
	Password string `yaml:"password" env:"SMTP_PASS"`
	From     string `yaml:"from" env:"SMTP_FROM"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Mode == "development"
}

// Load builds the configuration: defaults, then the YAML file at path
// (skipped when path is empty or missing), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Mode:    "production",
		BaseURL: "http://localhost:8080",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: database.Config{
			Type:     "sqlite",
			Database: "data/app.db",
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return cfg, nil
}
