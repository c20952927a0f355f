package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-converter/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 30*time.Second, cfg.HTTPReadTimeout)
	assert.Equal(t, 20*1024*1024, cfg.BodyLimit())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.ConvertWorkers)
	assert.Equal(t, "sections", cfg.DefaultCSVLayout)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_WRITE_TIMEOUT", "45s")
	t.Setenv("CONVERT_WORKERS", "8")
	t.Setenv("DEFAULT_CSV_LAYOUT", "side-by-side")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 45*time.Second, cfg.HTTPWriteTimeout)
	assert.Equal(t, 8, cfg.ConvertWorkers)
	assert.Equal(t, "side-by-side", cfg.DefaultCSVLayout)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"zero workers", "CONVERT_WORKERS", "0"},
		{"bad layout", "DEFAULT_CSV_LAYOUT", "pivot"},
		{"bad duration", "HTTP_READ_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
