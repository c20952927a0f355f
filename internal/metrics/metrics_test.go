package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.DocumentsConverted.WithLabelValues("success").Inc()
	m.ParseFailures.WithLabelValues("MissingAccountNumber").Inc()
	m.ConvertDuration.Observe(0.2)

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DocumentsConverted.WithLabelValues("success")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ParseFailures))
}

func TestNewIsolatedRegistries(t *testing.T) {
	// Separate registries must not collide on metric names.
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
