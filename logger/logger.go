package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	InitLoggerWithOutput(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

func InitLoggerWithOutput(out io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(out)
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel falls back to info when raw is empty or unknown.
func SetLogLevel(raw string) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil || raw == "" {
		level = zerolog.InfoLevel
		log.Debug().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Debug().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}

// GormWriter feeds gorm's SQL logger into zerolog.
type GormWriter struct{}

// Printf picks the level from the line gorm emits: failed queries are errors, slow queries
// and warnings are warnings, plain SQL traces are info.
func (GormWriter) Printf(format string, args ...interface{}) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))

	event := log.Info()
	switch {
	case hasError(args) || strings.Contains(msg, "[error]"):
		event = log.Error()
	case strings.Contains(msg, "SLOW SQL") || strings.Contains(msg, "[warn]"):
		event = log.Warn()
	}
	event.Str("component", "gorm").Msg(msg)
}

func hasError(args []interface{}) bool {
	for _, arg := range args {
		if _, ok := arg.(error); ok {
			return true
		}
	}
	return false
}
