// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

// EntityAPIConfig points at a remote entity service. When BaseURL is empty
// the server falls back to the embedded SQLite store.
type EntityAPIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (c EntityAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type DashboardConfig struct {
	RefreshSeconds int `yaml:"refresh_seconds"`
}

func (c DashboardConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	EntityAPI EntityAPIConfig `yaml:"entity_api"`

	Dashboard DashboardConfig `yaml:"dashboard"`
}

// Load loads both .env and yaml configuration. A missing config file is not
// an error; defaults apply.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	var cfg Config
	cfg.applyDefaults()

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Environment overrides
	if url := os.Getenv("ENTITY_API_URL"); url != "" {
		cfg.EntityAPI.BaseURL = url
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	c.App.Name = "canchaops"
	c.App.Environment = "development"
	c.App.Port = 8080
	c.Database.Driver = "sqlite"
	c.Database.Filename = "data/canchaops.db"
	c.EntityAPI.TimeoutSeconds = 10
	c.Dashboard.RefreshSeconds = 60
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Dashboard.RefreshSeconds <= 0 {
		return fmt.Errorf("dashboard refresh interval must be positive")
	}

	// The embedded store only matters when no remote entity API is set.
	if c.EntityAPI.BaseURL == "" {
		switch c.Database.Driver {
		case "sqlite":
			if c.Database.Filename == "" {
				return fmt.Errorf("database filename is required for sqlite")
			}
		default:
			return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
		}
	}

	return nil
}
