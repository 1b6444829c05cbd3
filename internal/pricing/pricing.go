// Package pricing derives order totals from cart contents and the
// selected fulfillment method.
package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/primecut/storefront/internal/cart"
)

// Fulfillment selects how the order reaches the customer.
type Fulfillment string

const (
	// None means the customer has not picked a method yet.
	None Fulfillment = ""
	// Delivery carries a flat fee.
	Delivery Fulfillment = "delivery"
	// Shipping is quoted by phone; no fee is computed.
	Shipping Fulfillment = "shipping"
)

// DeliveryFee is the flat local delivery surcharge in dollars.
const DeliveryFee = 20.00

// Totals is the result of one synchronous recomputation. For shipping
// the numeric total is the subtotal only and QuoteRequired is set; the
// real total is quoted by phone, so displays must not show a number.
type Totals struct {
	Subtotal      float64
	Fee           float64
	Total         float64
	QuoteRequired bool
}

// Compute sums unit price times quantity over the cart and applies the
// fulfillment fee. Price cells that fail to parse count as zero.
func Compute(entries []cart.Entry, method Fulfillment) Totals {
	var t Totals
	for _, e := range entries {
		t.Subtotal += e.Product.UnitPrice() * float64(e.Quantity)
	}
	switch method {
	case Delivery:
		t.Fee = DeliveryFee
		t.Total = t.Subtotal + t.Fee
	case Shipping:
		t.Total = t.Subtotal
		t.QuoteRequired = true
	default:
		t.Total = t.Subtotal
	}
	return t
}

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatAmount renders a dollar amount with locale-aware grouping.
func FormatAmount(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// DisplayFee is the fee line for summaries and emails.
func (t Totals) DisplayFee() string {
	if t.QuoteRequired {
		return "Call for Cost"
	}
	return FormatAmount(t.Fee)
}

// DisplayTotal is the total line; shipping orders show the quote
// wording instead of a number.
func (t Totals) DisplayTotal() string {
	if t.QuoteRequired {
		return "Call for Total"
	}
	return FormatAmount(t.Total)
}

// MethodLabel is the human wording used across the confirmation view,
// widget emails and the order sheet.
func MethodLabel(m Fulfillment) string {
	switch m {
	case Delivery:
		return "Delivery ($20.00)"
	case Shipping:
		return "Shipping (Call for Cost)"
	default:
		return ""
	}
}
