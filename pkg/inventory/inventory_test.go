package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrazzaque/mystic-manor/pkg/item"
)

func testItems(t *testing.T) (coin, bread, anvil item.Item) {
	t.Helper()
	r := item.NewRegistry()
	var err error
	coin, err = r.Register("coin", 1)
	require.NoError(t, err)
	bread, err = r.Register("holy bread", 10)
	require.NoError(t, err)
	anvil, err = r.Register("anvil", 50)
	require.NoError(t, err)
	return coin, bread, anvil
}

func TestContainer_AddRemove(t *testing.T) {
	coin, bread, _ := testItems(t)
	c := New()

	require.NoError(t, c.Add(coin, 5))
	assert.Equal(t, 5, c.QuantityOf(coin))
	assert.Equal(t, 0, c.QuantityOf(bread))

	require.NoError(t, c.Add(coin, 2))
	assert.Equal(t, 7, c.QuantityOf(coin))
	assert.Equal(t, 7, c.TotalWeight())

	require.NoError(t, c.Remove(coin, 3))
	assert.Equal(t, 4, c.QuantityOf(coin))

	err := c.Remove(coin, 5)
	assert.ErrorIs(t, err, ErrInsufficientQuantity)
	assert.Equal(t, 4, c.QuantityOf(coin), "failed remove must not change state")

	err = c.Remove(bread, 1)
	assert.ErrorIs(t, err, ErrInsufficientQuantity)
}

func TestContainer_ZeroEntriesArePruned(t *testing.T) {
	coin, _, _ := testItems(t)
	c := New()
	require.NoError(t, c.Add(coin, 2))
	require.NoError(t, c.Remove(coin, 2))

	assert.Equal(t, 0, c.QuantityOf(coin))
	assert.True(t, c.Empty())
	assert.Empty(t, c.Items(), "an item at zero must be absent, not present-with-zero")
}

func TestContainer_InvalidQuantities(t *testing.T) {
	coin, _, _ := testItems(t)
	c := New()
	assert.Error(t, c.Add(coin, 0))
	assert.Error(t, c.Add(coin, -3))
	assert.Error(t, c.Remove(coin, 0))
	assert.True(t, c.Empty())
}

func TestContainer_WeightCap(t *testing.T) {
	coin, bread, anvil := testItems(t)
	c := NewCapped(50)

	require.NoError(t, c.Add(coin, 5))

	// 50 more units of a 10-weight item would blow the cap.
	err := c.Add(bread, 50)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 5, c.QuantityOf(coin), "prior contents survive a failed add")
	assert.Equal(t, 0, c.QuantityOf(bread))

	err = c.Add(anvil, 1)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// Filling exactly to the cap is allowed.
	require.NoError(t, c.Add(bread, 4))
	assert.Equal(t, 45, c.TotalWeight())
	require.NoError(t, c.Add(coin, 5))
	assert.Equal(t, 50, c.TotalWeight())
	assert.ErrorIs(t, c.Add(coin, 1), ErrCapacityExceeded)
}

func TestContainer_TransferAllTo(t *testing.T) {
	coin, bread, _ := testItems(t)

	t.Run("moves everything and empties the source", func(t *testing.T) {
		src, dst := New(), New()
		require.NoError(t, src.Add(coin, 3))
		require.NoError(t, src.Add(bread, 1))
		require.NoError(t, dst.Add(coin, 2))

		require.NoError(t, src.TransferAllTo(dst))

		assert.True(t, src.Empty())
		assert.Equal(t, 5, dst.QuantityOf(coin))
		assert.Equal(t, 1, dst.QuantityOf(bread))
	})

	t.Run("does not partially apply into a full capped destination", func(t *testing.T) {
		src := New()
		require.NoError(t, src.Add(coin, 3))
		require.NoError(t, src.Add(bread, 2))

		dst := NewCapped(10)
		require.NoError(t, dst.Add(coin, 9))

		err := src.TransferAllTo(dst)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Equal(t, 3, src.QuantityOf(coin))
		assert.Equal(t, 2, src.QuantityOf(bread))
		assert.Equal(t, 9, dst.QuantityOf(coin))
		assert.Equal(t, 0, dst.QuantityOf(bread))
	})
}

func TestContainer_TotalWeightMatchesEntries(t *testing.T) {
	coin, bread, _ := testItems(t)
	c := NewCapped(100)
	require.NoError(t, c.Add(coin, 7))
	require.NoError(t, c.Add(bread, 3))
	require.NoError(t, c.Remove(coin, 2))

	want := 0
	for _, it := range c.Items() {
		want += it.Weight() * c.QuantityOf(it)
	}
	assert.Equal(t, want, c.TotalWeight())

	limit, capped := c.Cap()
	require.True(t, capped)
	assert.LessOrEqual(t, c.TotalWeight(), limit)
}
