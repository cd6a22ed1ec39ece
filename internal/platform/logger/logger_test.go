package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhitfield/folio-api/internal/config"
)

// Setup mutates the process default logger, so these tests do not run in
// parallel with each other.

func TestSetupWithWriterEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := SetupWithWriter(config.ServerConfig{LogLevel: "info"}, &buf)

	log.Info("server started", "port", 8080)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "server started", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, float64(8080), entry["port"])
}

func TestSetupWithWriterLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
	}{
		{name: "debug level passes debug", level: "debug", wantDebug: true},
		{name: "warn level drops debug", level: "warn", wantDebug: false},
		{name: "unknown level falls back to info", level: "verbose", wantDebug: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := SetupWithWriter(config.ServerConfig{LogLevel: tc.level}, &buf)

			log.Debug("probe")

			if tc.wantDebug {
				assert.NotEmpty(t, buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestSetupSetsDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	SetupWithWriter(config.ServerConfig{LogLevel: "info"}, &buf)

	slog.Info("via default")

	assert.Contains(t, buf.String(), "via default")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := WithLogger(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))

	// Without a stored logger the default is returned.
	assert.NotNil(t, FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	var buf bytes.Buffer
	stored := slog.New(slog.NewJSONHandler(&buf, nil))
	fallback := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := WithLogger(context.Background(), stored)
	assert.Same(t, stored, FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.NotNil(t, FromContextOrDefault(context.Background(), nil))
}
