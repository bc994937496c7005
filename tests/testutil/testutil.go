// Package testutil holds helpers shared by the storefront integration tests:
// sqlmock-backed gorm handles, JSON request helpers against an http.Handler
// and polling assertions.
package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// FixedNow is the instant returned by FixedClock.
var FixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// FixedClock returns a clock pinned to FixedNow.
func FixedClock() shared.FixedClock {
	return shared.FixedClock{At: FixedNow}
}

// MockDB is a gorm handle whose statements are answered by sqlmock.
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	SqlDB *sql.DB
}

// NewMockDB opens a postgres-dialect gorm handle on sqlmock. Unmet
// expectations fail the test on cleanup.
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet(), "unmet database expectations")
		_ = sqlDB.Close()
	})
	return &MockDB{DB: db, Mock: mock, SqlDB: sqlDB}
}

// UUID derives a stable id from seed so fixtures read the same across runs.
func UUID(seed string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("secondhandshop/"+seed))
}

// Eventually polls condition until it holds or timeout passes.
func Eventually(t *testing.T, condition func() bool, timeout time.Duration, msgAndArgs ...any) {
	t.Helper()
	require.Eventually(t, condition, timeout, 10*time.Millisecond, msgAndArgs...)
}
