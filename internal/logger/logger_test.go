package logger

import (
	"testing"

	"usermgmt/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}

	for raw, want := range tests {
		assert.Equal(t, want, parseLevel(raw), raw)
	}
}

func TestNew_BothFormats(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		log := New(&config.Config{LogLevel: "error", LogFormat: format})
		assert.NotPanics(t, func() {
			log.With("component", "test").Debug("dropped", "k", 1)
		})
	}
}
