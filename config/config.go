package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// DB holds the DB_* settings. It is embedded without a prefix so envconfig never falls
// back to bare names such as PORT or USER.
type DB struct {
	User           string `envconfig:"DB_USER" default:"root"`
	Pass           string `envconfig:"DB_PASS"`
	Host           string `envconfig:"DB_HOST" default:"127.0.0.1"`
	Port           string `envconfig:"DB_PORT" default:"3306"`
	Name           string `envconfig:"DB_NAME" default:"hotel_db"`
	MigrationTable string `envconfig:"DB_MIGRATION_TABLE" default:"schema_migrations"`
	AutoMigrate    bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
	Seed           bool   `envconfig:"DB_SEED" default:"false"`
	MaxOpenConns   int    `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns   int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	LogSQL         bool   `envconfig:"DB_LOG_SQL" default:"false"`
}

type Server struct {
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"20s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
}

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Booking dates and action timestamps are interpreted in this zone.
	Timezone    string   `envconfig:"APP_TIMEZONE" default:"Asia/Manila"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	// Overrides the payment_status values discovered from the schema.
	PaymentStatusValues []string `envconfig:"PAYMENT_STATUS_VALUES"`

	MySQLURL    string `envconfig:"MYSQL_URL"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	DB
	Server
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not found or couldn't load it; continuing with environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	return &cfg, nil
}

// Location resolves Timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", c.Timezone).Msg("unknown APP_TIMEZONE, using UTC")
		return time.UTC
	}
	return loc
}
