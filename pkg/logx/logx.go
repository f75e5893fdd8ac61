package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level aliases zerolog levels so callers never import zerolog directly.
type Level = zerolog.Level

const (
	LevelDebug = zerolog.DebugLevel
	LevelInfo  = zerolog.InfoLevel
	LevelWarn  = zerolog.WarnLevel
	LevelError = zerolog.ErrorLevel
)

var logger = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stdout,
	TimeFormat: time.RFC3339,
}).Level(zerolog.InfoLevel).With().Timestamp().Logger()

// SetLevel sets the global minimum log level.
func SetLevel(level Level) {
	logger = logger.Level(level)
}

// SetJSONOutput switches from console formatting to raw JSON lines,
// which is what log collectors expect in production.
func SetJSONOutput() {
	logger = zerolog.New(os.Stdout).Level(logger.GetLevel()).With().Timestamp().Logger()
}

func Debug(msg string) { logger.Debug().Msg(msg) }
func Info(msg string)  { logger.Info().Msg(msg) }
func Warn(msg string)  { logger.Warn().Msg(msg) }
func Error(msg string) { logger.Error().Msg(msg) }
func Fatal(msg string) { logger.Fatal().Msg(msg) }

func Debugf(format string, args ...any) { logger.Debug().Msgf(format, args...) }
func Infof(format string, args ...any)  { logger.Info().Msgf(format, args...) }
func Warnf(format string, args ...any)  { logger.Warn().Msgf(format, args...) }
func Errorf(format string, args ...any) { logger.Error().Msgf(format, args...) }
func Fatalf(format string, args ...any) { logger.Fatal().Msgf(format, args...) }
