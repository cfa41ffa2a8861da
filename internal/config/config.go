// Package config provides gamestats configuration loaded from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const logPrefix = "config:LoadConfig"

// Catalog sources accepted by STATS_CATALOG_SOURCE.
const (
	CatalogSourceFile = "file"
	CatalogSourceDB   = "db"
)

// Config holds gamestats configuration.
type Config struct {
	// Client context
	APIKey string `envconfig:"STATS_API_KEY"`
	Region string `envconfig:"STATS_REGION" default:"na"`

	// Catalog: file (STATS_CATALOG_FILE or built-in tables) or db
	CatalogFile   string `envconfig:"STATS_CATALOG_FILE"`
	CatalogSource string `envconfig:"STATS_CATALOG_SOURCE" default:"file"`

	// Upstream HTTP timeout; zero means no client-side timeout.
	HTTPTimeout time.Duration `envconfig:"STATS_HTTP_TIMEOUT" default:"0s"`

	// COMMS: connect to standalone NATS at COMMSURL.
	COMMSURL  string `envconfig:"COMMS_URL" default:"nats://127.0.0.1:4222"`
	COMMSName string `envconfig:"SERVICE_NAME" default:"gamestats"`

	// Subject overrides (empty = commsutil defaults)
	GatewaySubject   string `envconfig:"GATEWAY_SUBJECT"`
	CallEventSubject string `envconfig:"CALL_EVENT_SUBJECT"`

	// Per-request budget and concurrency for gateway calls
	RequestTimeout time.Duration `envconfig:"GATEWAY_REQUEST_TIMEOUT" default:"25s"`
	MaxInFlight    int           `envconfig:"GATEWAY_MAX_IN_FLIGHT" default:"64"`

	// Database (optional catalog persistence)
	DatabaseURL   string `envconfig:"DATABASE_URL"`
	RunMigrations bool   `envconfig:"RUN_MIGRATIONS" default:"false"`
	MigrationPath string `envconfig:"MIGRATION_PATH" default:"migrations"`

	// HTTP endpoint (STATS_HTTP_ADDR preferred, e.g. "0.0.0.0:8080")
	HTTPAddr           string        `envconfig:"STATS_HTTP_ADDR"`
	HTTPPort           int           `envconfig:"HTTP_PORT" default:"8080"`
	HealthCheckTimeout time.Duration `envconfig:"HEALTH_CHECK_TIMEOUT" default:"5s"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListenAddr returns HTTPAddr if set, otherwise ":HTTPPort".
func (c *Config) ListenAddr() string {
	if c.HTTPAddr != "" {
		return c.HTTPAddr
	}
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// UseDBCatalog reports whether the catalog should be read from the database.
func (c *Config) UseDBCatalog() bool {
	return strings.EqualFold(c.CatalogSource, CatalogSourceDB)
}

// ValidateForCall checks required config for issuing calls against the upstream API.
func (c *Config) ValidateForCall() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%s - STATS_API_KEY is required", logPrefix)
	}
	if strings.TrimSpace(c.Region) == "" {
		return fmt.Errorf("%s - STATS_REGION must not be empty", logPrefix)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("%s - STATS_HTTP_TIMEOUT must not be negative", logPrefix)
	}
	return nil
}

// ValidateForServe checks required config when running the gateway server.
func (c *Config) ValidateForServe() error {
	if err := c.ValidateForCall(); err != nil {
		return err
	}
	switch strings.ToLower(c.CatalogSource) {
	case CatalogSourceFile:
	case CatalogSourceDB:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%s - DATABASE_URL is required when STATS_CATALOG_SOURCE=db", logPrefix)
		}
	default:
		return fmt.Errorf("%s - STATS_CATALOG_SOURCE must be %q or %q, got %q", logPrefix, CatalogSourceFile, CatalogSourceDB, c.CatalogSource)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%s - GATEWAY_REQUEST_TIMEOUT must be positive", logPrefix)
	}
	if c.MaxInFlight <= 0 {
		return fmt.Errorf("%s - GATEWAY_MAX_IN_FLIGHT must be positive", logPrefix)
	}
	if c.HealthCheckTimeout <= 0 {
		return fmt.Errorf("%s - HEALTH_CHECK_TIMEOUT must be positive", logPrefix)
	}
	return nil
}

// ValidateForDB checks required config when running DB-dependent commands (migrate, clear, seed).
func (c *Config) ValidateForDB() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("%s - DATABASE_URL is required", logPrefix)
	}
	return nil
}
