package checkout

import (
	"fmt"
	"strings"

	"github.com/primecut/storefront/internal/cart"
	"github.com/primecut/storefront/internal/pricing"
	"github.com/primecut/storefront/internal/validate"
)

const itemRule = "----------------------------------------"

// RenderSummary produces the read-only confirmation view shown before
// the final submit. It is rebuilt from scratch on every showing so it
// always reflects the cart and fields at that moment.
func RenderSummary(fields validate.Fields, entries []cart.Entry, method pricing.Fulfillment) string {
	totals := pricing.Compute(entries, method)

	var b strings.Builder
	b.WriteString("Customer Information\n")
	fmt.Fprintf(&b, "Name: %s %s\n", fields.FirstName, fields.LastName)
	fmt.Fprintf(&b, "Email: %s\n", fields.Email)
	fmt.Fprintf(&b, "Phone: %s\n", fields.Phone)
	fmt.Fprintf(&b, "Method: %s\n\n", pricing.MethodLabel(method))

	b.WriteString("Order Items\n")
	b.WriteString(itemRule + "\n")
	for _, e := range entries {
		line := e.Product.UnitPrice() * float64(e.Quantity)
		fmt.Fprintf(&b, "%s\n", e.Product.ItemDesc)
		fmt.Fprintf(&b, "Quantity: %d @ %s each = %s\n",
			e.Quantity, pricing.FormatAmount(e.Product.UnitPrice()), pricing.FormatAmount(line))
		b.WriteString(itemRule + "\n")
	}

	fmt.Fprintf(&b, "\nSubtotal: %s\n", pricing.FormatAmount(totals.Subtotal))
	if method == pricing.Delivery {
		fmt.Fprintf(&b, "Delivery: %s\n", totals.DisplayFee())
	} else {
		fmt.Fprintf(&b, "Shipping: %s\n", totals.DisplayFee())
	}
	fmt.Fprintf(&b, "Order Total: %s\n", totals.DisplayTotal())
	return b.String()
}

// renderDetails is the structured text block sent through the email
// widget, built from the submission alone.
func renderDetails(sub Submission) string {
	subtotal := sub.Subtotal()

	var b strings.Builder
	b.WriteString("Customer Information:\n")
	fmt.Fprintf(&b, "Name: %s\n", sub.CustomerName)
	fmt.Fprintf(&b, "Email: %s\n", sub.CustomerEmail)
	fmt.Fprintf(&b, "Phone: %s\n", sub.CustomerPhone)
	fmt.Fprintf(&b, "Method: %s\n\n", pricing.MethodLabel(sub.Method()))

	b.WriteString("Order Items:\n")
	b.WriteString(itemRule + "\n")
	for _, it := range sub.Items {
		line := it.Price * float64(it.Quantity)
		fmt.Fprintf(&b, "%s - %s\n", it.ItemNumber, it.Name)
		fmt.Fprintf(&b, "Quantity: %d @ %s each = %s\n",
			it.Quantity, pricing.FormatAmount(it.Price), pricing.FormatAmount(line))
		b.WriteString(itemRule + "\n")
	}

	fmt.Fprintf(&b, "\nSubtotal: %s\n", pricing.FormatAmount(subtotal))
	if sub.Method() == pricing.Delivery {
		fmt.Fprintf(&b, "Delivery: %s\n", pricing.FormatAmount(pricing.DeliveryFee))
		fmt.Fprintf(&b, "Order Total: %s", pricing.FormatAmount(subtotal+pricing.DeliveryFee))
	} else {
		b.WriteString("Shipping: Call for Cost\n")
		b.WriteString("Order Total: Call for Total")
	}
	return b.String()
}
