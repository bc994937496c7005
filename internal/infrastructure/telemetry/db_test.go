package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/secondhandshop/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type widget struct {
	ID   uint
	Name string
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&widget{}))
	return db
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestInstrumentDB_RecordsQueriesAndPool(t *testing.T) {
	db := openSQLite(t)
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	inst, err := telemetry.InstrumentDB(db, provider.Meter("test"), telemetry.DBInstrumentationConfig{
		TraceEnabled:    true,
		SlowQueryThresh: time.Hour,
	}, zap.NewNop())
	require.NoError(t, err)
	defer func() { _ = inst.Close() }()

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&widget{Name: "lamp"}).Error)
	var got []widget
	require.NoError(t, db.WithContext(ctx).Find(&got).Error)

	metrics := collect(t, reader)
	hist, ok := metrics["db_query_duration_seconds"].(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.GreaterOrEqual(t, count, uint64(2))

	gauge, ok := metrics["db_pool_connections"].(metricdata.Gauge[int64])
	require.True(t, ok)
	assert.Len(t, gauge.DataPoints, 3)
}

func TestInstrumentDB_LogsSlowQueries(t *testing.T) {
	db := openSQLite(t)
	core, logs := observer.New(zap.WarnLevel)
	provider := sdkmetric.NewMeterProvider()
	defer func() { _ = provider.Shutdown(context.Background()) }()

	_, err := telemetry.InstrumentDB(db, provider.Meter("test"), telemetry.DBInstrumentationConfig{
		SlowQueryThresh: time.Nanosecond,
		LogFullSQL:      true,
	}, zap.New(core))
	require.NoError(t, err)

	require.NoError(t, db.WithContext(context.Background()).Create(&widget{Name: "desk"}).Error)

	slow := logs.FilterMessage("Slow database query").All()
	require.NotEmpty(t, slow)
	fields := slow[0].ContextMap()
	assert.Equal(t, "create", fields["operation"])
	assert.Equal(t, "widgets", fields["table"])
	assert.Contains(t, fields["sql"], "INSERT INTO")
}
