package ordersheet_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primecut/storefront/internal/domain"
	"github.com/primecut/storefront/internal/ordersheet"
)

func testOrder() ordersheet.Order {
	return ordersheet.Order{
		CustomerName:   "Jane Q Doe",
		CustomerEmail:  "jane@example.com",
		CustomerPhone:  "555-123-4567",
		DeliveryMethod: domain.MethodDelivery,
		Items: []ordersheet.Item{
			{ItemNumber: "1001", Name: "Ribeye Steak", Quantity: 2, Price: 32.50},
			{ItemNumber: "1002", Name: "Filet Mignon", Quantity: 1, Price: 28.00},
		},
	}
}

func TestNextOrderID(t *testing.T) {
	assert.Equal(t, "D-0008", ordersheet.NextOrderID("D-0007", domain.MethodDelivery))
	assert.Equal(t, "S-0008", ordersheet.NextOrderID("D-0007", domain.MethodShipping))
	// Numbering is shared across prefixes.
	assert.Equal(t, "D-0013", ordersheet.NextOrderID("S-0012", domain.MethodDelivery))
	// Empty sheet starts from one.
	assert.Equal(t, "D-0001", ordersheet.NextOrderID("", domain.MethodDelivery))
	assert.Equal(t, "S-0001", ordersheet.NextOrderID("not an id", domain.MethodShipping))
	// Padding stops at four digits but numbering continues.
	assert.Equal(t, "D-10000", ordersheet.NextOrderID("D-9999", domain.MethodDelivery))
}

func TestSplitName(t *testing.T) {
	first, last := ordersheet.SplitName("Jane Doe")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	first, last = ordersheet.SplitName("Jane Q Doe")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Q Doe", last)

	first, last = ordersheet.SplitName("  Cher  ")
	assert.Equal(t, "Cher", first)
	assert.Equal(t, "", last)

	first, last = ordersheet.SplitName("")
	assert.Equal(t, "", first)
	assert.Equal(t, "", last)
}

func TestTotals(t *testing.T) {
	o := testOrder()
	tt := o.Totals()
	assert.InDelta(t, 93.00, tt.Subtotal, 0.001)
	assert.InDelta(t, 20.00, tt.Fee, 0.001)
	assert.InDelta(t, 113.00, tt.Total, 0.001)

	o.DeliveryMethod = domain.MethodShipping
	tt = o.Totals()
	assert.Zero(t, tt.Fee)
	assert.InDelta(t, 93.00, tt.Total, 0.001)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, testOrder().Validate())

	o := testOrder()
	o.CustomerName = "  "
	assert.Error(t, o.Validate())

	o = testOrder()
	o.CustomerEmail = ""
	assert.Error(t, o.Validate())

	o = testOrder()
	o.DeliveryMethod = "pickup"
	assert.Error(t, o.Validate())

	o = testOrder()
	o.Items = nil
	assert.Error(t, o.Validate())

	o = testOrder()
	o.Items[0].Quantity = 0
	assert.Error(t, o.Validate())
}

func TestBuildRows(t *testing.T) {
	at := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	rows := ordersheet.BuildRows("D-0042", testOrder(), at)
	require.Len(t, rows, 3)

	// Item rows carry per-item columns and blank totals.
	first := rows[0]
	assert.Equal(t, "D-0042", first.OrderID)
	assert.Equal(t, at, first.OrderedAt)
	assert.Equal(t, "Jane", first.FirstName)
	assert.Equal(t, "Q Doe", first.LastName)
	assert.Equal(t, "Ribeye Steak", first.ItemName)
	assert.Equal(t, "2", first.Quantity)
	assert.Equal(t, "32.50", first.PriceEach)
	assert.Equal(t, "65.00", first.ItemTotal)
	assert.Empty(t, first.Subtotal)
	assert.Empty(t, first.Total)
	assert.Equal(t, "New", first.Status)

	// The summary row carries the totals and blank item columns.
	summary := rows[2]
	assert.Equal(t, domain.SummaryItemName, summary.ItemName)
	assert.Empty(t, summary.ItemNumber)
	assert.Empty(t, summary.Quantity)
	assert.Equal(t, "93.00", summary.Subtotal)
	assert.Equal(t, "20.00", summary.DeliveryFee)
	assert.Equal(t, "113.00", summary.Total)
}

func TestBuildRowsShipping(t *testing.T) {
	o := testOrder()
	o.DeliveryMethod = domain.MethodShipping
	rows := ordersheet.BuildRows("S-0001", o, time.Now())
	summary := rows[len(rows)-1]
	assert.Equal(t, "0.00", summary.DeliveryFee)
	assert.Equal(t, "93.00", summary.Total)
}
