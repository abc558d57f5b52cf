package logger_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"guesthouse/config"
	"guesthouse/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func restore(t *testing.T) {
	t.Helper()

	original, level := log.Logger, zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.Server.LogLevel = "warn"

	logger.InitLogger(cfg)

	assert.Equal(t, time.RFC3339, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{level: "debug", expected: zerolog.DebugLevel},
		{level: "error", expected: zerolog.ErrorLevel},
		{level: "", expected: zerolog.InfoLevel},
		{level: "verbose", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.level

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logger.ErrorWithStack(errors.New("booking insert failed"))

	assert.Contains(t, buf.String(), "booking insert failed")
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "logger_test.go")
}
