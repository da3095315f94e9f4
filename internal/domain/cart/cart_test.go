package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(id string, price int64, qty int) Item {
	return Item{ProductID: id, Name: "Product " + id, Price: decimal.NewFromInt(price), Quantity: qty}
}

func TestCart_Add(t *testing.T) {
	t.Run("appends new product", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(newItem("1", 45000, 1)))
		assert.Len(t, c.Items, 1)
	})

	t.Run("merges quantity for existing product", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(newItem("1", 45000, 1)))
		require.NoError(t, c.Add(newItem("1", 45000, 2)))
		require.Len(t, c.Items, 1)
		assert.Equal(t, 3, c.Items[0].Quantity)
	})

	t.Run("missing quantity defaults to one", func(t *testing.T) {
		c := New()
		require.NoError(t, c.Add(newItem("1", 100, 0)))
		assert.Equal(t, 1, c.Items[0].Quantity)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		c := New()
		assert.Error(t, c.Add(newItem("1", 100, -2)))
		assert.True(t, c.IsEmpty())
	})

	t.Run("rejects empty product id", func(t *testing.T) {
		c := New()
		assert.Error(t, c.Add(newItem("", 100, 1)))
	})
}

func TestCart_Update(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(newItem("1", 100, 1)))
	require.NoError(t, c.Add(newItem("2", 50, 1)))

	c.Update("1", 4)
	item, ok := c.Get("1")
	require.True(t, ok)
	assert.Equal(t, 4, item.Quantity)

	c.Update("2", 0)
	_, ok = c.Get("2")
	assert.False(t, ok)

	c.Update("missing", 3)
	assert.Len(t, c.Items, 1)
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(newItem("1", 100, 1)))
	require.NoError(t, c.Add(newItem("2", 50, 1)))

	c.Remove("1")
	c.Remove("absent")
	assert.Len(t, c.Items, 1)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Count())
}

func TestCart_TotalAndCount(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(newItem("1", 45000, 1)))
	require.NoError(t, c.Add(newItem("2", 5000, 2)))

	assert.Equal(t, "KES 55000.00", c.Total().String())
	assert.Equal(t, 3, c.Count())
}

func TestCart_Fingerprint(t *testing.T) {
	a := New()
	require.NoError(t, a.Add(newItem("1", 45000, 1)))
	require.NoError(t, a.Add(newItem("2", 5000, 2)))

	b := New()
	require.NoError(t, b.Add(newItem("2", 5000, 2)))
	require.NoError(t, b.Add(newItem("1", 45000, 1)))
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "line order does not matter")

	before := a.Fingerprint()
	a.Update("2", 3)
	assert.NotEqual(t, before, a.Fingerprint())

	a.Update("2", 2)
	assert.Equal(t, before, a.Fingerprint())

	assert.NotEqual(t, New().Fingerprint(), before)
}
