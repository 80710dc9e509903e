// Package config loads server settings from an optional YAML file,
// overridden by environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all pickword configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Auth   AuthConfig   `yaml:"auth"`
	Words  WordsConfig  `yaml:"words"`
	Game   GameConfig   `yaml:"game"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port           string `yaml:"port"`
	ClientOrigin   string `yaml:"client_origin"` // CORS origin allowed with credentials
	RequestTimeout string `yaml:"request_timeout"`
}

// StoreConfig selects the word store.
type StoreConfig struct {
	Driver string `yaml:"driver"` // sqlite | memory
	Path   string `yaml:"path"`
}

// AuthConfig configures creator tokens.
type AuthConfig struct {
	JWTSecret    string `yaml:"jwt_secret"`
	TokenTTLDays int    `yaml:"token_ttl_days"`
}

// WordsConfig points at word list files; empty means embedded defaults.
type WordsConfig struct {
	AllowedFile string `yaml:"allowed_file"`
	ViableFile  string `yaml:"viable_file"`
	DailySalt   string `yaml:"daily_salt"`
}

// GameConfig configures sessions.
type GameConfig struct {
	Rows       int    `yaml:"rows"`
	PruneAfter string `yaml:"prune_after"` // drop sessions older than this
}

// LogConfig configures zerolog.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

const devSecret = "dev_secret_change_me"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			ClientOrigin:   "http://localhost:3000",
			RequestTimeout: "10s",
		},
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   "./data/pickword.db",
		},
		Auth: AuthConfig{
			JWTSecret:    devSecret,
			TokenTTLDays: 365,
		},
		Words: WordsConfig{
			DailySalt: "local_dev_salt",
		},
		Game: GameConfig{
			Rows:       6,
			PruneAfter: "48h",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path or a missing file yields defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv() {
	setStr(&c.Server.Port, "PORT")
	setStr(&c.Server.ClientOrigin, "CLIENT_ORIGIN")
	setStr(&c.Store.Driver, "STORE")
	setStr(&c.Store.Path, "DB_PATH")
	setStr(&c.Auth.JWTSecret, "JWT_SECRET")
	setStr(&c.Words.AllowedFile, "WORDS_ALLOWED_FILE")
	setStr(&c.Words.ViableFile, "WORDS_VIABLE_FILE")
	setStr(&c.Words.DailySalt, "DAILY_SALT")
	setStr(&c.Log.Level, "LOG_LEVEL")
	if v := os.Getenv("JWT_EXPIRES_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Auth.TokenTTLDays = n
		}
	}
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("store.driver: unknown driver %q", c.Store.Driver)
	}
	if c.Game.Rows <= 0 {
		return fmt.Errorf("game.rows must be positive, got %d", c.Game.Rows)
	}
	if _, err := time.ParseDuration(c.Server.RequestTimeout); err != nil {
		return fmt.Errorf("server.request_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.Game.PruneAfter); err != nil {
		return fmt.Errorf("game.prune_after: %w", err)
	}
	return nil
}

// RequestTimeout is Server.RequestTimeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.RequestTimeout)
	return d
}

// PruneAfter is Game.PruneAfter as a duration.
func (c *Config) PruneAfter() time.Duration {
	d, _ := time.ParseDuration(c.Game.PruneAfter)
	return d
}

// TokenTTL is the creator token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLDays) * 24 * time.Hour
}

// InsecureSecret reports whether the built-in development secret is in use.
func (c *Config) InsecureSecret() bool { return c.Auth.JWTSecret == devSecret }

// Redacted returns the config as YAML with secrets masked.
func (c *Config) Redacted() ([]byte, error) {
	cp := *c
	if cp.Auth.JWTSecret != "" {
		cp.Auth.JWTSecret = "********"
	}
	return yaml.Marshal(&cp)
}
