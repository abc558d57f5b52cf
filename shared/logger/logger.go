package logger

import (
	"io"
	"os"
	"time"

	"guesthouse/config"
	"guesthouse/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultLevel = zerolog.InfoLevel

// InitLogger points the global logger at stdout. Development gets the human
// readable console writer; every other environment logs JSON lines tagged
// with the service name.
func InitLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stdout
	if cfg.Server.Env == "" || cfg.Server.Env == constant.ServerEnvDevelopment {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	logCtx := zerolog.New(output).With().Timestamp()
	if cfg.App.Name != "" {
		logCtx = logCtx.Str("service", cfg.App.Name)
	}

	log.Logger = logCtx.Logger()

	SetLogLevel(cfg)
}

// SetLogLevel applies SERVER_LOG_LEVEL, defaulting to info when it is unset or unknown.
func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = defaultLevel
	}

	zerolog.SetGlobalLevel(level)
	log.Debug().Str("level", level.String()).Msg("log level set")
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
