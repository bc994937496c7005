package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBInstrumentationConfig controls query tracing and metrics.
type DBInstrumentationConfig struct {
	TraceEnabled    bool
	LogFullSQL      bool // include bound variables in spans
	SlowQueryThresh time.Duration
}

// DBInstrumentation records query durations, pool gauges and slow queries
// for one gorm connection.
type DBInstrumentation struct {
	config        DBInstrumentationConfig
	logger        *zap.Logger
	queryDuration *Histogram
	registration  metric.Registration
}

type dbStartKey struct{}

var dbOperations = []string{"create", "query", "update", "delete", "row", "raw"}

// InstrumentDB registers the otelgorm plugin (when tracing is enabled) and
// timing callbacks on db. Pool statistics are exported as observable gauges.
func InstrumentDB(db *gorm.DB, meter metric.Meter, cfg DBInstrumentationConfig, logger *zap.Logger) (*DBInstrumentation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	inst := &DBInstrumentation{config: cfg, logger: logger}

	if cfg.TraceEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName(db.Dialector.Name())}
		if !cfg.LogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return nil, fmt.Errorf("failed to register otelgorm: %w", err)
		}
	}

	var err error
	inst.queryDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Duration of database queries",
		Unit:        "s",
		Buckets:     DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	if err := inst.registerCallbacks(db); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := inst.registerPoolGauges(meter, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("Database instrumentation enabled",
		zap.Bool("trace_enabled", cfg.TraceEnabled),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh))
	return inst, nil
}

// Close unregisters the pool gauges.
func (i *DBInstrumentation) Close() error {
	if i.registration == nil {
		return nil
	}
	return i.registration.Unregister()
}

func (i *DBInstrumentation) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	type registrar struct {
		before func(name string, fn func(*gorm.DB)) error
		after  func(name string, fn func(*gorm.DB)) error
	}
	regs := map[string]registrar{
		"create": {
			before: func(n string, fn func(*gorm.DB)) error { return cb.Create().Before("gorm:create").Register(n, fn) },
			after:  func(n string, fn func(*gorm.DB)) error { return cb.Create().After("gorm:create").Register(n, fn) },
		},
		"query": {
			before: func(n string, fn func(*gorm.DB)) error { return cb.Query().Before("gorm:query").Register(n, fn) },
			after:  func(n string, fn func(*gorm.DB)) error { return cb.Query().After("gorm:query").Register(n, fn) },
		},
		"update": {
			before: func(n string, fn func(*gorm.DB)) error { return cb.Update().Before("gorm:update").Register(n, fn) },
			after:  func(n string, fn func(*gorm.DB)) error { return cb.Update().After("gorm:update").Register(n, fn) },
		},
		"delete": {
			before: func(n string, fn func(*gorm.DB)) error { return cb.Delete().Before("gorm:delete").Register(n, fn) },
			after:  func(n string, fn func(*gorm.DB)) error { return cb.Delete().After("gorm:delete").Register(n, fn) },
		},
		"row": {
			before: func(n string, fn func(*gorm.DB)) error { return cb.Row().Before("gorm:row").Register(n, fn) },
			after:  func(n string, fn func(*gorm.DB)) error { return cb.Row().After("gorm:row").Register(n, fn) },
		},
		"raw": {
			before: func(n string, fn func(*gorm.DB)) error { return cb.Raw().Before("gorm:raw").Register(n, fn) },
			after:  func(n string, fn func(*gorm.DB)) error { return cb.Raw().After("gorm:raw").Register(n, fn) },
		},
	}

	for _, op := range dbOperations {
		r := regs[op]
		if err := r.before("telemetry:before_"+op, i.before); err != nil {
			return fmt.Errorf("failed to register %s timing callback: %w", op, err)
		}
		if err := r.after("telemetry:after_"+op, i.afterFor(op)); err != nil {
			return fmt.Errorf("failed to register %s timing callback: %w", op, err)
		}
	}
	return nil
}

func (i *DBInstrumentation) before(db *gorm.DB) {
	if db.Statement.Context == nil {
		return
	}
	db.Statement.Context = context.WithValue(db.Statement.Context, dbStartKey{}, time.Now())
}

func (i *DBInstrumentation) afterFor(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		start, ok := ctx.Value(dbStartKey{}).(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)
		table := db.Statement.Table
		i.queryDuration.RecordDuration(ctx, elapsed,
			AttrDBOperation.String(operation),
			AttrDBTable.String(table))

		span := trace.SpanFromContext(ctx)
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			RecordError(span, db.Error)
		}
		if elapsed < i.config.SlowQueryThresh {
			return
		}
		if span.IsRecording() {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()))
		}
		fields := []zap.Field{
			zap.String("operation", operation),
			zap.String("table", table),
			zap.Duration("duration", elapsed),
			zap.Int64("rows_affected", db.Statement.RowsAffected),
		}
		if i.config.LogFullSQL {
			fields = append(fields, zap.String("sql", strings.TrimSpace(db.Statement.SQL.String())))
		}
		i.logger.Warn("Slow database query", fields...)
	}
}

func (i *DBInstrumentation) registerPoolGauges(meter metric.Meter, sqlDB *sql.DB) error {
	open, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Database pool connections by state"),
		metric.WithUnit("{connections}"))
	if err != nil {
		return fmt.Errorf("failed to create pool gauge: %w", err)
	}
	waits, err := meter.Int64ObservableCounter("db_pool_wait_count",
		metric.WithDescription("Total number of connections waited for"),
		metric.WithUnit("{waits}"))
	if err != nil {
		return fmt.Errorf("failed to create pool wait counter: %w", err)
	}

	i.registration, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(open, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
		o.ObserveInt64(open, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
		o.ObserveInt64(open, int64(stats.MaxOpenConnections), metric.WithAttributes(AttrDBState.String("max")))
		o.ObserveInt64(waits, stats.WaitCount)
		return nil
	}, open, waits)
	if err != nil {
		return fmt.Errorf("failed to register pool callback: %w", err)
	}
	return nil
}
