package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"hotel-admin/config"
	"hotel-admin/logger"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down) is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.SetLogLevel(cfg.LogLevel)

	switch direction := os.Args[1]; direction {
	case "up", "down", "drop", "step-up":
		if err := config.Migrate(cfg, direction); err != nil {
			log.Fatal().Err(err).Str("direction", direction).Msg("migration failed")
		}
	default:
		log.Fatal().Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}
}
