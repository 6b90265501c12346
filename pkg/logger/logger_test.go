package logger

import (
	"dating_app_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSetLevel(t *testing.T) {
	cfg := &config.Config{Log: config.LogConfig{Level: "warn"}}
	SetLevel(cfg)
	assert.Equal(t, zap.WarnLevel, Level())

	cfg.Log.Level = "not-a-level"
	SetLevel(cfg)
	assert.Equal(t, zap.InfoLevel, Level())

	cfg.Log.Level = ""
	cfg.Server.Mode = "debug"
	SetLevel(cfg)
	assert.Equal(t, zap.DebugLevel, Level())
}

func TestInitLogger_ConsoleOnly(t *testing.T) {
	InitLogger(&config.Config{Log: config.LogConfig{Level: "error"}})
	assert.NotNil(t, Log)
	assert.False(t, Log.Core().Enabled(zap.InfoLevel))
	assert.True(t, Log.Core().Enabled(zap.ErrorLevel))
}
