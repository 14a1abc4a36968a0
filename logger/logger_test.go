package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"hotel-admin/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	var buf bytes.Buffer
	logger.InitLoggerWithOutput(&buf)

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
	assert.Contains(t, buf.String(), "Zerolog initialized.")
}

func TestErrorWithStack(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("booking update failed"))

	assert.Contains(t, buf.String(), "booking update failed")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestSetLogLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.SetLogLevel("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	logger.SetLogLevel("not-a-level")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	logger.SetLogLevel("")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestGormWriter(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logger.GormWriter{}.Printf("\n[%.3fms] %s\n", 1.5, "SELECT 1")

	assert.Contains(t, buf.String(), `"component":"gorm"`)
	assert.Contains(t, buf.String(), `"level":"info"`)
	assert.Contains(t, buf.String(), "SELECT 1")
}

func TestGormWriterLevels(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	tests := []struct {
		name   string
		format string
		args   []interface{}
		level  string
	}{
		{"slow query", "%s %s\n[%.3fms] [rows:%v] %s", []interface{}{"db.go:10", "SLOW SQL >= 1s", 1200.0, 1, "SELECT 1"}, "warn"},
		{"failed query", "%s %s\n[%.3fms] [rows:%v] %s", []interface{}{"db.go:10", errors.New("no such table: booking_logs"), 0.4, 0, "INSERT"}, "error"},
		{"warn message", "%s\n[warn] something odd", []interface{}{"db.go:10"}, "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log.Logger = log.Output(&buf)

			logger.GormWriter{}.Printf(tt.format, tt.args...)

			assert.Contains(t, buf.String(), `"level":"`+tt.level+`"`)
		})
	}
}
