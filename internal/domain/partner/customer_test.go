package partner

import (
	"strings"
	"testing"
	"time"

	"github.com/secondhandshop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 2, 23, 4, 0, 17, 0, time.UTC)

func TestNewCustomer(t *testing.T) {
	t.Run("normalizes contact fields", func(t *testing.T) {
		c, err := NewCustomer(shared.StringPtr(" Jane "), shared.StringPtr(" JANE@Example.com "), shared.StringPtr("  "), testNow)
		require.NoError(t, err)
		assert.Equal(t, "Jane", *c.Name)
		assert.Equal(t, "jane@example.com", *c.Email)
		assert.Nil(t, c.PhoneNumber)
		assert.Equal(t, testNow, c.CreatedAt)
	})

	t.Run("phone only is enough", func(t *testing.T) {
		c, err := NewCustomer(nil, nil, shared.StringPtr("0412 345 678"), testNow)
		require.NoError(t, err)
		assert.Nil(t, c.Email)
		assert.Equal(t, "0412 345 678", *c.PhoneNumber)
	})

	t.Run("requires email or phone", func(t *testing.T) {
		_, err := NewCustomer(shared.StringPtr("Jane"), shared.StringPtr(" "), nil, testNow)
		require.Error(t, err)
		assert.Equal(t, "Customer must have an email or phone number.", err.Error())
	})

	t.Run("enforces length limits", func(t *testing.T) {
		_, err := NewCustomer(shared.StringPtr(strings.Repeat("n", 121)), shared.StringPtr("a@b.c"), nil, testNow)
		assert.Error(t, err)
		_, err = NewCustomer(nil, shared.StringPtr(strings.Repeat("e", 257)), nil, testNow)
		assert.Error(t, err)
		_, err = NewCustomer(nil, nil, shared.StringPtr(strings.Repeat("1", 41)), testNow)
		assert.Error(t, err)
	})
}

func TestCustomerUpdateContact(t *testing.T) {
	c, err := NewCustomer(nil, shared.StringPtr("a@b.c"), nil, testNow)
	require.NoError(t, err)

	later := testNow.Add(time.Minute)
	require.NoError(t, c.UpdateContact(shared.StringPtr("Ann"), c.Email, shared.StringPtr("555"), later))
	assert.Equal(t, "Ann", *c.Name)
	assert.Equal(t, "555", *c.PhoneNumber)
	assert.Equal(t, later, c.UpdatedAt)

	assert.Error(t, c.UpdateContact(nil, nil, nil, later))
	assert.True(t, c.SameAs(c))
	assert.False(t, c.SameAs(nil))
}
