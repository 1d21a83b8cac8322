// Package config loads server settings from the process environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/msomdec/product-catalog/internal/auth"
)

// Config holds runtime settings for the catalog server.
//
// Fields:
//   - Port: TCP port the HTTP server listens on.
//   - MongoURI / MongoDatabase: document database connection. Takes precedence over DatabasePath.
//   - DatabasePath: SQLite file used when no MongoURI is configured.
//   - JWTSecret: HMAC key for signing access tokens.
//   - BcryptCost: bcrypt work factor for password hashes.
//   - AllowedOrigins: CORS origins; "*" allows any.
//   - LogLevel: minimum slog level.
type Config struct {
	Port           string
	MongoURI       string
	MongoDatabase  string
	DatabasePath   string
	JWTSecret      string
	BcryptCost     int
	AllowedOrigins []string
	LogLevel       slog.Level
}

// LoadDefaults populates Config with the defaults used when a variable is unset.
func (c *Config) LoadDefaults() {
	c.Port = "5000"
	c.MongoDatabase = "catalog"
	c.BcryptCost = auth.DefaultBcryptCost
	c.AllowedOrigins = []string{"*"}
	c.LogLevel = slog.LevelInfo
}

// Load builds a Config from defaults overlaid with environment variables
// and validates the result. A .env file in the working directory, if present,
// fills in variables that are not already set.
func Load() (*Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()

	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if v := getenv("PORT"); v != "" {
		cfg.Port = v
	}
	cfg.MongoURI = getenv("MONGO_URI")
	if v := getenv("MONGO_DATABASE"); v != "" {
		cfg.MongoDatabase = v
	}
	cfg.DatabasePath = getenv("DATABASE_PATH")
	cfg.JWTSecret = getenv("JWT_SECRET")

	if v := getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = parsed
	}

	if v := getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.AllowedOrigins = origins
		}
	}

	if v := getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are present and within range.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if c.MongoURI == "" && c.DatabasePath == "" {
		return errors.New("MONGO_URI (or DATABASE_PATH for SQLite) is required")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if _, err := strconv.ParseUint(c.Port, 10, 16); err != nil {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	return nil
}

// UseMongo reports whether the document database backend is configured.
func (c *Config) UseMongo() bool {
	return c.MongoURI != ""
}
