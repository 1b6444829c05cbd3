// Package cart owns the in-memory order state between catalog load and
// submission. All mutations are synchronous; interested parties react
// to change events rather than polling.
package cart

import (
	"sort"
	"strings"

	"github.com/asaskevich/EventBus"
	"github.com/spf13/cast"

	"github.com/primecut/storefront/internal/catalog"
)

// TopicChanged is published on every cart mutation so totals and form
// validity are recomputed immediately, never deferred.
const TopicChanged = "cart:changed"

// Entry pairs a catalog product with the quantity in the cart.
// Quantities are always positive; zero-quantity entries are removed.
type Entry struct {
	Index    int
	Product  catalog.Product
	Quantity int
}

// Cart maps catalog positions to entries. It is owned by a single
// goroutine (the UI loop of the desk client); no locking.
type Cart struct {
	products []catalog.Product
	entries  map[int]Entry
	policy   QuantityPolicy
	bus      EventBus.Bus
}

func New(policy QuantityPolicy, bus EventBus.Bus) *Cart {
	return &Cart{
		entries: make(map[int]Entry),
		policy:  policy,
		bus:     bus,
	}
}

// Load replaces the catalog and clears any prior selections, matching
// the source behavior on every catalog (re)load.
func (c *Cart) Load(products []catalog.Product) {
	c.products = products
	c.entries = make(map[int]Entry)
	c.publish()
}

// Products returns the loaded catalog in sheet order.
func (c *Cart) Products() []catalog.Product {
	return c.products
}

// SetQuantity coerces the raw quantity input, applies the minimum
// order quantity policy and upserts or removes the entry. The corrected
// quantity is returned. Invalid input counts as zero.
func (c *Cart) SetQuantity(index int, raw string) int {
	if index < 0 || index >= len(c.products) {
		return 0
	}
	product := c.products[index]

	qty, err := cast.ToIntE(strings.TrimSpace(raw))
	if err != nil || qty < 0 {
		qty = 0
	}
	qty = c.policy.Correct(qty, product.MinQty())

	if qty > 0 {
		c.entries[index] = Entry{Index: index, Product: product, Quantity: qty}
	} else {
		qty = 0
		delete(c.entries, index)
	}
	c.publish()
	return qty
}

// Quantity reports the current quantity for a catalog position.
func (c *Cart) Quantity(index int) int {
	return c.entries[index].Quantity
}

// Entries returns the cart contents ordered by catalog position.
func (c *Cart) Entries() []Entry {
	keys := make([]int, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.entries[k])
	}
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.entries) == 0 }

func (c *Cart) Size() int { return len(c.entries) }

// Reset empties the cart after a terminal submission.
func (c *Cart) Reset() {
	c.entries = make(map[int]Entry)
	c.publish()
}

func (c *Cart) publish() {
	if c.bus != nil {
		c.bus.Publish(TopicChanged)
	}
}
