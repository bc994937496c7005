package telemetry_test

import (
	"context"
	"testing"

	"github.com/secondhandshop/backend/internal/infrastructure/config"
	"github.com/secondhandshop/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetup_AllDisabled(t *testing.T) {
	ctx := context.Background()
	p, err := telemetry.Setup(ctx, config.TelemetryConfig{ServiceName: "shop"}, config.PyroscopeConfig{}, "1.2.3", zap.NewNop())
	require.NoError(t, err)

	assert.False(t, p.Tracer.IsEnabled())
	assert.False(t, p.Meter.IsEnabled())
	assert.False(t, p.Logs.IsEnabled())
	assert.False(t, p.Profiler.IsEnabled())
	assert.NotNil(t, p.Meter.Meter("test"))
	assert.NotNil(t, p.Tracer.Tracer("test"))

	require.NoError(t, p.Shutdown(ctx))
}

func TestNewProfiler_RequiresAddress(t *testing.T) {
	_, err := telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: true, ApplicationName: "shop"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server address")

	_, err = telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application name")
}

func TestProfiler_StopWhenDisabled(t *testing.T) {
	p, err := telemetry.NewProfiler(telemetry.ProfilerConfig{}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, p.Stop())
	require.NoError(t, p.Stop())
}

func TestSampler(t *testing.T) {
	assert.Contains(t, telemetry.Sampler(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, telemetry.Sampler(0).Description(), "AlwaysOffSampler")
	assert.Contains(t, telemetry.Sampler(0.25).Description(), "TraceIDRatioBased{0.25}")

	var _ sdktrace.Sampler = telemetry.Sampler(0.5)
}

func TestNewZapOTELCore_Disabled(t *testing.T) {
	lp, err := telemetry.NewLoggerProvider(context.Background(), telemetry.LogsConfig{}, zap.NewNop())
	require.NoError(t, err)

	core := telemetry.NewZapOTELCore(lp, "shop", zapcore.InfoLevel)
	assert.False(t, core.Enabled(zapcore.ErrorLevel))
	assert.False(t, telemetry.NewZapOTELCore(nil, "shop", zapcore.InfoLevel).Enabled(zapcore.ErrorLevel))
}
