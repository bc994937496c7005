package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/catalog"
	"github.com/secondhandshop/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// setupTestDB opens a migrated in-memory sqlite database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

// newMockGormDB creates a postgres-dialect gorm DB backed by sqlmock
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return gormDB, mock, mockDB
}

func createTestCategory(t *testing.T, db *gorm.DB, slug string, active bool, sortOrder int) *catalog.Category {
	t.Helper()
	c, err := catalog.NewCategory("Category "+slug, slug, nil, sortOrder, active, testNow)
	require.NoError(t, err)
	require.NoError(t, NewGormCategoryRepository(db).Save(context.Background(), c))
	return c
}

func createTestProduct(t *testing.T, db *gorm.DB, slug string, categoryID uuid.UUID, status catalog.ProductStatus, updatedAt time.Time) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Product "+slug, slug, "desc", decimal.RequireFromString("12.50"), catalog.ConditionGood, categoryID, nil, updatedAt)
	require.NoError(t, err)
	require.NoError(t, p.ChangeStatus(status, nil, updatedAt))
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), p))
	return p
}
