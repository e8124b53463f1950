package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/tenant-portal/internal/config"
)

func TestNew_ProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, config.EnvProd, "")

	log.Debug("hidden")
	log.Info("rent projected", slog.String("tenant_id", "t-1"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "rent projected", line["msg"])
	assert.Equal(t, "t-1", line["tenant_id"])
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		env, level string
		enabled    slog.Level
		disabled   slog.Level
	}{
		{env: config.EnvProd, enabled: slog.LevelInfo, disabled: slog.LevelDebug},
		{env: config.EnvDev, enabled: slog.LevelDebug, disabled: slog.LevelDebug - 1},
		{env: config.EnvLocal, enabled: slog.LevelDebug, disabled: slog.LevelDebug - 1},
		{env: config.EnvLocal, level: "warn", enabled: slog.LevelWarn, disabled: slog.LevelInfo},
		{env: config.EnvProd, level: "ERROR", enabled: slog.LevelError, disabled: slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.level, func(t *testing.T) {
			log := New(&bytes.Buffer{}, tt.env, tt.level)
			assert.True(t, log.Enabled(context.Background(), tt.enabled))
			assert.False(t, log.Enabled(context.Background(), tt.disabled))
		})
	}
}

func TestNew_LocalIsText(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, config.EnvLocal, "").Info("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(buf.Bytes()))
}
