package migration

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add inquiries table", "add_inquiries_table"},
		{"Add-Inquiries-Table", "add_inquiries_table"},
		{"ADD__INQUIRIES", "add_inquiries"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreator_Create(t *testing.T) {
	dir := t.TempDir()
	creator := NewCreator(dir)
	creator.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	t.Run("first migration is 000001", func(t *testing.T) {
		mf, err := creator.Create("add customers", "Create customers table")
		require.NoError(t, err)
		assert.Equal(t, "000001", mf.Version)
		assert.Equal(t, filepath.Join(dir, "000001_add_customers.up.sql"), mf.UpPath)
		assert.Equal(t, filepath.Join(dir, "000001_add_customers.down.sql"), mf.DownPath)

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "Create customers table")
		assert.Contains(t, string(up), "Write your UP migration SQL here")

		down, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "Rollback")
	})

	t.Run("next migration follows the highest version", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "000007_manual.up.sql"), nil, 0o644))
		mf, err := creator.Create("Add Index", "")
		require.NoError(t, err)
		assert.Equal(t, "000008", mf.Version)
		assert.True(t, strings.HasSuffix(mf.UpPath, "000008_add_index.up.sql"))
	})

	t.Run("rejects unusable names", func(t *testing.T) {
		_, err := creator.Create("!!!", "")
		require.Error(t, err)
	})
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory is empty", func(t *testing.T) {
		list, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("lists the repository migrations in order", func(t *testing.T) {
		_, file, _, ok := runtime.Caller(0)
		require.True(t, ok)
		dir := filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")

		list, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"000001_initial_schema",
			"000002_customers_and_inquiries",
			"000003_product_image_primary_index",
		}, list)

		for _, name := range list {
			_, err := os.Stat(filepath.Join(dir, name+".down.sql"))
			assert.NoError(t, err, "missing down migration for %s", name)
		}
	})
}
