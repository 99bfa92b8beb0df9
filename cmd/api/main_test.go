package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"grantdocs/internal/config"
)

func TestRun_StartupFailureReturnsError(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")
	core, logs := observer.New(zap.InfoLevel)

	// No host: the database step fails before any connection is attempted.
	cfg := &config.AppConfig{Port: "0", Database: config.DatabaseConfig{Port: "5432"}}

	err := run(context.Background(), cfg, zap.New(core))

	require.Error(t, err)
	assert.ErrorContains(t, err, "connect database")
	assert.Equal(t, 1, logs.FilterMessage("tracing_configured").Len())
	assert.Zero(t, logs.FilterMessage("tracing_shutdown_failed").Len())
	assert.Zero(t, logs.FilterMessage("server_started").Len())
}
