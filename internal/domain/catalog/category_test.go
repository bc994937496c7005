package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates category with normalized slug", func(t *testing.T) {
		c, err := NewCategory(" Home Appliances ", " Home-Appliances", nil, 3, true, testNow)
		require.NoError(t, err)
		assert.Equal(t, "Home Appliances", c.Name)
		assert.Equal(t, "home-appliances", c.Slug)
		assert.Equal(t, 3, c.SortOrder)
		assert.True(t, c.IsActive)
		assert.Equal(t, testNow, c.CreatedAt)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("", "x", nil, 0, true, testNow)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("fails with long name", func(t *testing.T) {
		_, err := NewCategory(strings.Repeat("n", 121), "x", nil, 0, true, testNow)
		require.Error(t, err)
	})

	t.Run("fails with double hyphen slug", func(t *testing.T) {
		_, err := NewCategory("Furniture", "furn--iture", nil, 0, true, testNow)
		require.Error(t, err)
	})
}

func TestCategoryUpdate(t *testing.T) {
	c, err := NewCategory("Furniture", "furniture", nil, 0, true, testNow)
	require.NoError(t, err)

	t.Run("rejects self as parent", func(t *testing.T) {
		self := c.ID
		err := c.Update("Furniture", "furniture", &self, 0, true, testNow)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "own parent")
	})

	t.Run("updates fields", func(t *testing.T) {
		parent := uuid.New()
		require.NoError(t, c.Update("Chairs", "chairs", &parent, 2, false, testNow))
		assert.Equal(t, "chairs", c.Slug)
		assert.Equal(t, &parent, c.ParentCategoryID)
		assert.False(t, c.IsActive)
	})

	t.Run("activate and deactivate", func(t *testing.T) {
		c.Activate(testNow)
		assert.True(t, c.IsActive)
		c.Deactivate(testNow)
		assert.False(t, c.IsActive)
	})
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "abc-1", NormalizeSlug("  ABC-1 "))
	assert.True(t, IsValidSlug("panasonic-microwave-oven"))
	assert.False(t, IsValidSlug("-leading"))
	assert.False(t, IsValidSlug("trailing-"))
	assert.False(t, IsValidSlug("under_score"))
	assert.False(t, IsValidSlug(""))
}
