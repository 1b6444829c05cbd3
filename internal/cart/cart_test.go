package cart_test

import (
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primecut/storefront/internal/cart"
	"github.com/primecut/storefront/internal/catalog"
)

func testCatalog() []catalog.Product {
	return []catalog.Product{
		{ItemNumber: "1001", ItemDesc: "Ribeye Steak", Retail: "32.50"},
		{ItemNumber: "1004", ItemDesc: "Ground Beef 80/20", Retail: "6.50", MinOrder: "5"},
		{ItemNumber: "1003", ItemDesc: "NY Strip", Retail: "24.00", MinOrder: "2"},
	}
}

func TestSetQuantityAndEntries(t *testing.T) {
	c := cart.New(cart.PolicyByName("raise"), nil)
	c.Load(testCatalog())

	assert.Equal(t, 2, c.SetQuantity(0, "2"))
	assert.Equal(t, 5, c.SetQuantity(1, "5"))

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Ribeye Steak", entries[0].Product.ItemDesc)
	assert.Equal(t, "Ground Beef 80/20", entries[1].Product.ItemDesc)
	assert.Equal(t, 2, c.Size())
	assert.False(t, c.IsEmpty())
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	c := cart.New(cart.PolicyByName("raise"), nil)
	c.Load(testCatalog())

	c.SetQuantity(0, "2")
	assert.Equal(t, 0, c.SetQuantity(0, "0"))
	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.Quantity(0))
}

func TestSetQuantityInvalidInput(t *testing.T) {
	c := cart.New(cart.PolicyByName("raise"), nil)
	c.Load(testCatalog())

	assert.Equal(t, 0, c.SetQuantity(0, "abc"))
	assert.Equal(t, 0, c.SetQuantity(0, "-3"))
	assert.Equal(t, 0, c.SetQuantity(0, ""))
	assert.True(t, c.IsEmpty())
}

func TestSetQuantityOutOfRangeIndex(t *testing.T) {
	c := cart.New(cart.PolicyByName("raise"), nil)
	c.Load(testCatalog())

	assert.Equal(t, 0, c.SetQuantity(-1, "2"))
	assert.Equal(t, 0, c.SetQuantity(99, "2"))
	assert.True(t, c.IsEmpty())
}

func TestRaisePolicyLiftsBelowMinimum(t *testing.T) {
	c := cart.New(cart.PolicyByName("raise"), nil)
	c.Load(testCatalog())

	// Below the minimum of five gets raised.
	assert.Equal(t, 5, c.SetQuantity(1, "2"))
	// Above the minimum passes through even off-multiple.
	assert.Equal(t, 7, c.SetQuantity(1, "7"))
}

func TestSnapPolicyRoundsToMultiple(t *testing.T) {
	c := cart.New(cart.PolicyByName("snap"), nil)
	c.Load(testCatalog())

	// 7 with a minimum of 5 rounds to 5; 8 rounds to 10.
	assert.Equal(t, 5, c.SetQuantity(1, "7"))
	assert.Equal(t, 10, c.SetQuantity(1, "8"))
	// 1 with a minimum of 5 rounds to zero and leaves the cart.
	assert.Equal(t, 0, c.SetQuantity(1, "1"))
	assert.True(t, c.IsEmpty())
}

func TestSnapPolicyMultiplesUnchanged(t *testing.T) {
	p := cart.PolicyByName("snap")
	for q := 1; q <= 10; q++ {
		assert.Equal(t, q*5, p.Correct(q*5, 5))
	}
	// No minimum means no correction at all.
	assert.Equal(t, 3, p.Correct(3, 1))
}

func TestLoadClearsSelections(t *testing.T) {
	c := cart.New(cart.PolicyByName("raise"), nil)
	c.Load(testCatalog())
	c.SetQuantity(0, "2")

	c.Load(testCatalog())
	assert.True(t, c.IsEmpty())
}

func TestResetEmptiesCart(t *testing.T) {
	c := cart.New(cart.PolicyByName("raise"), nil)
	c.Load(testCatalog())
	c.SetQuantity(0, "2")
	c.SetQuantity(2, "2")

	c.Reset()
	assert.True(t, c.IsEmpty())
	assert.Len(t, c.Products(), 3)
}

func TestChangeEventsPublished(t *testing.T) {
	bus := EventBus.New()
	changes := 0
	require.NoError(t, bus.Subscribe(cart.TopicChanged, func() { changes++ }))

	c := cart.New(cart.PolicyByName("raise"), bus)
	c.Load(testCatalog()) // 1
	c.SetQuantity(0, "2") // 2
	c.SetQuantity(0, "0") // 3
	c.Reset()             // 4

	assert.Equal(t, 4, changes)
}
