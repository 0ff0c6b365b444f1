package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// EnvLogLevel - переменная окружения с уровнем логирования.
const EnvLogLevel = "FUZZYMORPH_LOGLEVEL"

const (
	LOG_LEVEL_DEBUG = "DEBUG"
	LOG_LEVEL_INFO  = "INFO"
	LOG_LEVEL_WARN  = "WARN"
	LOG_LEVEL_ERROR = "ERROR"
	LOG_LEVEL_FATAL = "FATAL"
	LOG_LEVEL_PANIC = "PANIC"
)

// NewLogger создает логгер компонента с уровнем из окружения.
func NewLogger(component string) zerolog.Logger {
	level, ok := os.LookupEnv(EnvLogLevel)
	if !ok {
		level = LOG_LEVEL_INFO
	}
	return NewLoggerWithLevel(component, level)
}

// NewLoggerWithLevel создает логгер компонента с явно заданным уровнем.
// Неизвестный уровень трактуется как INFO.
func NewLoggerWithLevel(component, level string) zerolog.Logger {
	return zerolog.New(os.Stderr).
		With().
		Str("component", component).
		Timestamp().
		Logger().
		Level(ParseLevel(level))
}

// ParseLevel переводит название уровня в zerolog.Level.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case LOG_LEVEL_DEBUG:
		return zerolog.DebugLevel
	case LOG_LEVEL_WARN:
		return zerolog.WarnLevel
	case LOG_LEVEL_ERROR:
		return zerolog.ErrorLevel
	case LOG_LEVEL_FATAL:
		return zerolog.FatalLevel
	case LOG_LEVEL_PANIC:
		return zerolog.PanicLevel
	}
	return zerolog.InfoLevel
}
