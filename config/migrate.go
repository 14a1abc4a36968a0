package config

import (
	"errors"
	"fmt"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"

	"hotel-admin/migrations"
)

func migrationURL(cfg *Config) (string, error) {
	dsn, _, err := ResolveDSN(cfg)
	if err != nil {
		return "", err
	}

	mc, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	mc.MultiStatements = true
	if mc.Params == nil {
		mc.Params = map[string]string{}
	}
	mc.Params["x-migrations-table"] = cfg.DB.MigrationTable

	return "mysql://" + mc.FormatDSN(), nil
}

func getMigrator(cfg *Config) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, "mysql")
	if err != nil {
		return nil, fmt.Errorf("error opening embedded migrations: %w", err)
	}

	dbURL, err := migrationURL(cfg)
	if err != nil {
		return nil, err
	}

	mig, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Migrate runs one of up, down, step-up or drop against the configured schema.
func Migrate(cfg *Config, action string) error {
	mig, err := getMigrator(cfg)
	if err != nil {
		return err
	}
	defer mig.Close()

	switch action {
	case "up":
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}
		log.Info().Msg("Database migrations completed successfully")
	case "down":
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}
		log.Info().Msg("Database migrations rolled back successfully")
	case "step-up":
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}
		log.Info().Msg("Database migrations completed successfully")
	case "drop":
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}
		log.Info().Msg("Database migrations rolled back successfully")
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}

	return nil
}
