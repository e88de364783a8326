package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Server struct {
		Port        string   `yaml:"port"`
		Debug       bool     `yaml:"debug"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`

	Database Database `yaml:"database"`

	Model struct {
		Path string `yaml:"path"`
	} `yaml:"model"`

	Session struct {
		Secret     string `yaml:"secret"`
		CookieName string `yaml:"cookie_name"`
		Store      string `yaml:"store"` // "memory" or "badger"
		BadgerPath string `yaml:"badger_path"`
		TTLHours   int    `yaml:"ttl_hours"`
	} `yaml:"session"`

	Game struct {
		// StrictGrading grades answers against the server-side question set
		// instead of the correct/reason values posted by the client.
		StrictGrading *bool `yaml:"strict_grading"`
	} `yaml:"game"`
}

// Database selects the relational store.
type Database struct {
	Path string `yaml:"path"` // SQLite path or PostgreSQL URL
	Type string `yaml:"type"` // "sqlite" or "postgres"
}

// LoadConfig loads configuration from a YAML file. A missing file yields the
// defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	default:
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(config); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyDefaults() {
	// Expand environment variables in secrets and connection strings
	c.Session.Secret = os.ExpandEnv(c.Session.Secret)
	c.Database.Path = os.ExpandEnv(c.Database.Path)

	if c.Server.Port == "" {
		c.Server.Port = "8000"
	}

	if c.Database.Type == "" {
		c.Database.Type = "sqlite"
	}

	if c.Database.Path == "" {
		c.Database.Path = "./data/database.db"
	}

	if c.Model.Path == "" {
		c.Model.Path = "model/fraud_model.json"
	}

	if c.Session.Secret == "" {
		c.Session.Secret = "simple_secret_key"
	}

	if c.Session.CookieName == "" {
		c.Session.CookieName = "session"
	}

	if c.Session.Store == "" {
		c.Session.Store = "memory"
	}

	if c.Session.BadgerPath == "" {
		c.Session.BadgerPath = "./data/sessions"
	}

	if c.Session.TTLHours == 0 {
		c.Session.TTLHours = 24
	}

	if c.Game.StrictGrading == nil {
		strict := true
		c.Game.StrictGrading = &strict
	}

}

func (c *Config) validate() error {
	switch c.Database.Type {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database type %q", c.Database.Type)
	}

	switch c.Session.Store {
	case "memory", "badger":
	default:
		return fmt.Errorf("unsupported session store %q", c.Session.Store)
	}

	if c.Session.Secret == "" {
		return errors.New("session secret must not be empty")
	}

	if c.Session.TTLHours < 0 {
		return errors.New("session ttl_hours must not be negative")
	}

	return nil
}

// Strict reports whether game answers are graded server-side.
func (c *Config) Strict() bool {
	return c.Game.StrictGrading == nil || *c.Game.StrictGrading
}
