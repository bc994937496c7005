package telemetry

import (
	"context"
	"errors"

	"github.com/secondhandshop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Providers bundles the telemetry pipeline of one process.
type Providers struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
}

// Setup starts tracing, metrics, log export and profiling as configured.
// Disabled parts are no-ops. On error everything started so far is shut down.
func Setup(ctx context.Context, tel config.TelemetryConfig, pyro config.PyroscopeConfig, version string, logger *zap.Logger) (*Providers, error) {
	p := &Providers{}
	var err error

	p.Tracer, err = NewTracerProvider(ctx, Config{
		Enabled:           tel.Enabled,
		CollectorEndpoint: tel.CollectorEndpoint,
		SamplingRatio:     tel.SamplingRatio,
		ServiceName:       tel.ServiceName,
		ServiceVersion:    version,
		Insecure:          tel.Insecure,
	}, logger)
	if err != nil {
		return nil, err
	}

	p.Meter, err = NewMeterProvider(ctx, MetricsConfig{
		Enabled:           tel.MetricsEnabled,
		CollectorEndpoint: tel.CollectorEndpoint,
		ExportInterval:    tel.MetricsInterval,
		ServiceName:       tel.ServiceName,
		ServiceVersion:    version,
		Insecure:          tel.Insecure,
	}, logger)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}

	p.Logs, err = NewLoggerProvider(ctx, LogsConfig{
		Enabled:           tel.LogsEnabled,
		CollectorEndpoint: tel.CollectorEndpoint,
		ServiceName:       tel.ServiceName,
		ServiceVersion:    version,
		Insecure:          tel.Insecure,
	}, logger)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}

	p.Profiler, err = NewProfiler(ProfilerConfig{
		Enabled:         pyro.Enabled,
		ServerAddress:   pyro.ServerAddress,
		ApplicationName: pyro.ApplicationName,
	}, logger)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	if p.Profiler.IsEnabled() {
		p.Tracer.EnableSpanProfiles()
	}
	return p, nil
}

// Shutdown stops every started provider and joins their errors.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Profiler != nil {
		errs = append(errs, p.Profiler.Stop())
	}
	if p.Logs != nil {
		errs = append(errs, p.Logs.Shutdown(ctx))
	}
	if p.Meter != nil {
		errs = append(errs, p.Meter.Shutdown(ctx))
	}
	if p.Tracer != nil {
		errs = append(errs, p.Tracer.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
