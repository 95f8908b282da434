package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"hotel/config"
	"hotel/shared/constant"
	"hotel/shared/logger"
)

func restore(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     zerolog.Level
	}{
		{name: "debug", logLevel: "debug", want: zerolog.DebugLevel},
		{name: "warn", logLevel: "warn", want: zerolog.WarnLevel},
		{name: "disabled", logLevel: "disabled", want: zerolog.Disabled},
		{name: "unknown falls back to info", logLevel: "loud", want: zerolog.InfoLevel},
		{name: "empty falls back to info", logLevel: "", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestOutput(t *testing.T) {
	var buf bytes.Buffer

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	assert.Equal(t, &buf, logger.Output(cfg, &buf))

	cfg.Server.Env = constant.ServerEnvDevelopment
	_, isConsole := logger.Output(cfg, &buf).(zerolog.ConsoleWriter)
	assert.True(t, isConsole)
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	logger.ErrorWithStack(errors.New("room lock lost"))

	assert.Contains(t, buf.String(), "room lock lost")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestInitLogger(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.LogLevel = "warn"

	logger.InitLogger(cfg)

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
}
