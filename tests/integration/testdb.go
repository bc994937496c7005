// Package integration runs the storefront against a real PostgreSQL started
// with testcontainers, with the schema applied by the SQL migrations.
package integration

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/secondhandshop/backend/internal/infrastructure/migration"
	"github.com/secondhandshop/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	sharedMu        sync.Mutex
	sharedContainer *tcpostgres.PostgresContainer
	sharedDSN       string
)

// TestDB is a connection to the shared migrated database
type TestDB struct {
	DB    *gorm.DB
	SqlDB *sql.DB
	t     *testing.T
}

// NewTestDB connects to the package's PostgreSQL container, starting and
// migrating it on first use, and empties every table so each test starts
// from a blank schema.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}

	dsn := sharedDatabase(t)
	db, sqlDB := connect(t, dsn)
	tdb := &TestDB{DB: db, SqlDB: sqlDB, t: t}
	tdb.Truncate()

	t.Cleanup(func() { _ = sqlDB.Close() })
	return tdb
}

// Database wraps the connection the way the server does
func (tdb *TestDB) Database() *persistence.Database {
	return persistence.NewDatabaseFromGorm(tdb.DB)
}

// Truncate empties all application tables
func (tdb *TestDB) Truncate() {
	tdb.t.Helper()
	err := tdb.DB.Exec(`TRUNCATE TABLE inquiries, customers, product_images, products, categories, admin_users CASCADE`).Error
	require.NoError(tdb.t, err)
}

func sharedDatabase(t *testing.T) string {
	t.Helper()
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedContainer != nil {
		return sharedDSN
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("secondhandshop_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	_, sqlDB := connect(t, dsn)
	defer sqlDB.Close()
	m, err := migration.New(sqlDB, migrationsPath(t), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up(), "apply migrations")

	sharedContainer = container
	sharedDSN = dsn
	return dsn
}

func connect(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	level := gormlogger.Silent
	if os.Getenv("TEST_DB_DEBUG") != "" {
		level = gormlogger.Info
	}
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(level), TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	return db, sqlDB
}

// migrationsPath walks up from this file to the repository's migrations dir
func migrationsPath(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)

	dir := filepath.Dir(file)
	for i := 0; i < 4; i++ {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		dir = filepath.Dir(dir)
	}
	t.Fatal("migrations directory not found")
	return ""
}

// terminateShared stops the container; called from TestMain
func terminateShared() {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if sharedContainer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = sharedContainer.Terminate(ctx)
	sharedContainer = nil
	sharedDSN = ""
}
