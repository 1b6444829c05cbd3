// Package checkout drives an order from confirmation through the
// transport fallback chain: order endpoint, then the transactional
// email widget, then a local CSV export.
package checkout

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/primecut/storefront/internal/cart"
	"github.com/primecut/storefront/internal/pricing"
	"github.com/primecut/storefront/internal/validate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Item is one order line on the wire.
type Item struct {
	ItemNumber string  `json:"itemNumber,omitempty"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// Submission is the serialized order POSTed to the order endpoint.
// Built fresh at submit time from cart state, never mutated after.
type Submission struct {
	CustomerName   string `json:"customerName"`
	CustomerEmail  string `json:"customerEmail"`
	CustomerPhone  string `json:"customerPhone"`
	DeliveryMethod string `json:"deliveryMethod"`
	Items          []Item `json:"items"`
}

// Build constructs the submission from the current cart entries in
// catalog order. Missing item numbers fall back to "N/A", as the
// original order writer expects a value in that column.
func Build(fields validate.Fields, entries []cart.Entry, method pricing.Fulfillment) Submission {
	sub := Submission{
		CustomerName:   fields.FirstName + " " + fields.LastName,
		CustomerEmail:  fields.Email,
		CustomerPhone:  fields.Phone,
		DeliveryMethod: string(method),
		Items:          make([]Item, 0, len(entries)),
	}
	for _, e := range entries {
		num := e.Product.ItemNumber
		if num == "" {
			num = "N/A"
		}
		sub.Items = append(sub.Items, Item{
			ItemNumber: num,
			Name:       e.Product.ItemDesc,
			Quantity:   e.Quantity,
			Price:      e.Product.UnitPrice(),
		})
	}
	return sub
}

// Subtotal recomputes the item sum from the submission itself, used by
// the widget and export transports which render totals without access
// to the cart.
func (s Submission) Subtotal() float64 {
	var sum float64
	for _, it := range s.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

func (s Submission) Method() pricing.Fulfillment {
	return pricing.Fulfillment(s.DeliveryMethod)
}
