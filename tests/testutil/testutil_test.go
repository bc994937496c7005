package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID_Stable(t *testing.T) {
	assert.Equal(t, UUID("oak-table"), UUID("oak-table"))
	assert.NotEqual(t, UUID("oak-table"), UUID("pine-chair"))
}

func TestFixedClock(t *testing.T) {
	assert.Equal(t, FixedNow, FixedClock().Now())
}

func TestNewMockDB(t *testing.T) {
	m := NewMockDB(t)
	m.Mock.ExpectQuery(`SELECT 1`).WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	var n int
	require.NoError(t, m.DB.Raw("SELECT 1").Scan(&n).Error)
	assert.Equal(t, 1, n)
}

func TestClient(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "INVALID_INPUT"}})
			return
		}
		body["auth"] = c.GetHeader("Authorization")
		c.JSON(http.StatusOK, body)
	})
	client := &Client{Handler: engine}

	rec := client.WithToken("abc").Do(t, http.MethodPost, "/echo", map[string]string{"name": "chair"})
	RequireStatus(t, rec, http.StatusOK)
	got := DecodeJSON[map[string]string](t, rec)
	assert.Equal(t, "chair", got["name"])
	assert.Equal(t, "Bearer abc", got["auth"])

	rec = client.Do(t, http.MethodPost, "/echo", nil)
	RequireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "INVALID_INPUT", ErrorCode(t, rec))
}

func TestEventually(t *testing.T) {
	calls := 0
	Eventually(t, func() bool {
		calls++
		return calls >= 3
	}, time.Second)
	assert.GreaterOrEqual(t, calls, 3)
}
