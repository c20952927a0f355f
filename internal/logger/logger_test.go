package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Format: "json", Output: &buf})

	log.Info().Msg("dropped")
	log.Warn().Str("document", "a.pdf").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "a.pdf", entry["document"])
	assert.Equal(t, "kept", entry["message"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: "console", Output: &buf})
	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	stored := New(Config{Output: &buf})

	ctx := WithContext(context.Background(), stored)
	fromCtx := FromContext(ctx, Nop())
	fromCtx.Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")

	buf.Reset()
	fallback := FromContext(context.Background(), Nop())
	fallback.Info().Msg("discarded")
	assert.Empty(t, buf.String())
}
