package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.PanicLevel, ParseLevel(LOG_LEVEL_PANIC))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNewLogger_LevelFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, LOG_LEVEL_ERROR)
	l := NewLogger("test")
	assert.Equal(t, zerolog.ErrorLevel, l.GetLevel())
}
