//go:build unit

package cart_test

import (
	"testing"

	"recoil-backend/internal/domain/cart"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id uuid.UUID, variant string, qty int32) cart.Item {
	return cart.Item{
		ProductID:      id,
		Name:           "Hoodie",
		UnitPriceCents: 45000,
		Variant:        variant,
		Quantity:       qty,
	}
}

func TestCart_Add(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()

	t.Run("appends new line with quantity 1", func(t *testing.T) {
		c := cart.New()
		require.NoError(t, c.Add(item(productA, "M", 99)))

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, int32(1), items[0].Quantity)
	})

	t.Run("increments existing line by one", func(t *testing.T) {
		c := cart.FromItems([]cart.Item{item(productA, "M", 2)})
		require.NoError(t, c.Add(item(productA, "M", 1)))

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, int32(3), items[0].Quantity)
	})

	t.Run("same product in two sizes occupies two lines", func(t *testing.T) {
		c := cart.New()
		require.NoError(t, c.Add(item(productA, "M", 1)))
		require.NoError(t, c.Add(item(productA, "L", 1)))

		assert.Len(t, c.Items(), 2)
	})

	t.Run("rejects empty product id", func(t *testing.T) {
		c := cart.New()
		err := c.Add(item(uuid.Nil, "M", 1))
		assert.ErrorIs(t, err, cart.ErrEmptyProductID)
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		c := cart.New()
		require.NoError(t, c.Add(item(productB, "S", 1)))
		require.NoError(t, c.Add(item(productA, "M", 1)))

		items := c.Items()
		require.Len(t, items, 2)
		assert.Equal(t, productB, items[0].ProductID)
		assert.Equal(t, productA, items[1].ProductID)
	})
}

func TestCart_SetQuantity(t *testing.T) {
	productA := uuid.New()

	t.Run("sets quantity on matching key", func(t *testing.T) {
		c := cart.FromItems([]cart.Item{item(productA, "M", 1)})
		c.SetQuantity(productA, "M", 5)
		assert.Equal(t, int32(5), c.Items()[0].Quantity)
	})

	t.Run("clamps to minimum of 1", func(t *testing.T) {
		c := cart.FromItems([]cart.Item{item(productA, "M", 4)})
		c.SetQuantity(productA, "M", 0)
		assert.Equal(t, int32(1), c.Items()[0].Quantity)

		c.SetQuantity(productA, "M", -3)
		assert.Equal(t, int32(1), c.Items()[0].Quantity)
	})

	t.Run("unknown key is a no-op", func(t *testing.T) {
		c := cart.FromItems([]cart.Item{item(productA, "M", 2)})
		c.SetQuantity(uuid.New(), "M", 9)

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, int32(2), items[0].Quantity)
	})
}

func TestCart_Remove(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()

	c := cart.FromItems([]cart.Item{
		item(productA, "M", 1),
		item(productA, "L", 2),
		item(productB, "", 3),
	})

	c.Remove(productA, "M")

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "L", items[0].Variant)
	assert.Equal(t, productB, items[1].ProductID)
}

func TestCart_TotalCents(t *testing.T) {
	productA := uuid.New()

	c := cart.FromItems([]cart.Item{
		{ProductID: productA, UnitPriceCents: 45000, Variant: "M", Quantity: 2},
		{ProductID: uuid.New(), UnitPriceCents: 30000, Quantity: 1},
	})

	assert.Equal(t, int64(120000), c.TotalCents())
}

func TestMerge(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()

	t.Run("empty guest cart leaves user cart unchanged", func(t *testing.T) {
		userItems := []cart.Item{item(productA, "M", 2)}
		merged := cart.Merge(userItems, nil)
		assert.Equal(t, userItems, merged)
	})

	t.Run("empty user cart adopts guest cart", func(t *testing.T) {
		guestItems := []cart.Item{item(productA, "M", 2)}
		merged := cart.Merge(nil, guestItems)
		assert.Equal(t, guestItems, merged)
	})

	t.Run("sums quantities on matching keys", func(t *testing.T) {
		userItems := []cart.Item{item(productA, "M", 1), item(productB, "", 3)}
		guestItems := []cart.Item{item(productA, "M", 2)}

		merged := cart.Merge(userItems, guestItems)

		expected := []cart.Item{item(productA, "M", 3), item(productB, "", 3)}
		if diff := cmp.Diff(expected, merged); diff != "" {
			t.Errorf("merged cart mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("appends guest lines with no user counterpart", func(t *testing.T) {
		userItems := []cart.Item{item(productA, "M", 1)}
		guestItems := []cart.Item{item(productB, "", 4)}

		merged := cart.Merge(userItems, guestItems)

		require.Len(t, merged, 2)
		assert.Equal(t, productA, merged[0].ProductID)
		assert.Equal(t, productB, merged[1].ProductID)
		assert.Equal(t, int32(4), merged[1].Quantity)
	})

	t.Run("variant distinguishes lines of the same product", func(t *testing.T) {
		userItems := []cart.Item{item(productA, "M", 1)}
		guestItems := []cart.Item{item(productA, "L", 1)}

		merged := cart.Merge(userItems, guestItems)

		require.Len(t, merged, 2)
		assert.Equal(t, int32(1), merged[0].Quantity)
		assert.Equal(t, int32(1), merged[1].Quantity)
	})

	t.Run("same product in both carts of one unit each sums to two", func(t *testing.T) {
		merged := cart.Merge(
			[]cart.Item{item(productA, "", 1)},
			[]cart.Item{item(productA, "", 1)},
		)

		require.Len(t, merged, 1)
		assert.Equal(t, int32(2), merged[0].Quantity)
	})
}
