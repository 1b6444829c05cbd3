// Package ordersheet appends submitted orders to the orders table in
// the row layout of the original spreadsheet: one row per line item
// plus a summary row carrying the totals.
package ordersheet

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/primecut/storefront/internal/domain"
)

// Item is one order line as received from the write endpoint.
type Item struct {
	ItemNumber string  `json:"itemNumber"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// Order is the write endpoint's POST body.
type Order struct {
	CustomerName   string `json:"customerName"`
	CustomerEmail  string `json:"customerEmail"`
	CustomerPhone  string `json:"customerPhone"`
	DeliveryMethod string `json:"deliveryMethod"`
	Items          []Item `json:"items"`
}

// Totals are recomputed server side; client-supplied numbers are never
// trusted for the sheet.
type Totals struct {
	Subtotal float64
	Fee      float64
	Total    float64
}

// DeliveryFee is the flat fee added to delivery orders.
const DeliveryFee = 20.00

func (o Order) Totals() Totals {
	var t Totals
	for _, it := range o.Items {
		t.Subtotal += it.Price * float64(it.Quantity)
	}
	if o.DeliveryMethod == domain.MethodDelivery {
		t.Fee = DeliveryFee
	}
	t.Total = t.Subtotal + t.Fee
	return t
}

// Validate rejects orders the sheet cannot represent.
func (o Order) Validate() error {
	if strings.TrimSpace(o.CustomerName) == "" {
		return errors.New("customer name is required")
	}
	if strings.TrimSpace(o.CustomerEmail) == "" {
		return errors.New("customer email is required")
	}
	if o.DeliveryMethod != domain.MethodDelivery && o.DeliveryMethod != domain.MethodShipping {
		return errors.New("deliveryMethod must be delivery or shipping")
	}
	if len(o.Items) == 0 {
		return errors.New("order has no items")
	}
	for _, it := range o.Items {
		if it.Quantity <= 0 {
			return errors.Errorf("item %q has non-positive quantity", it.Name)
		}
	}
	return nil
}

var orderIDRe = regexp.MustCompile(`[DS]-(\d+)`)

// NextOrderID derives the next sequential order ID from the last one
// on the sheet. Numbering is shared across both prefixes; the prefix
// reflects the new order's fulfillment method: D-0001, S-0002, ...
func NextOrderID(lastID, method string) string {
	number := 1
	if m := orderIDRe.FindStringSubmatch(lastID); m != nil {
		if n, err := cast.ToIntE(m[1]); err == nil {
			number = n + 1
		}
	}
	prefix := "S-"
	if method == domain.MethodDelivery {
		prefix = "D-"
	}
	return fmt.Sprintf("%s%04d", prefix, number)
}

// SplitName splits a full customer name on the first space, matching
// the sheet's First Name / Last Name columns.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(full))
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// BuildRows renders the order into sheet rows: item rows with the
// totals columns blank, then the summary row with the per-item columns
// blank.
func BuildRows(orderID string, o Order, at time.Time) []domain.OrderRow {
	first, last := SplitName(o.CustomerName)
	t := o.Totals()

	rows := make([]domain.OrderRow, 0, len(o.Items)+1)
	for _, it := range o.Items {
		rows = append(rows, domain.OrderRow{
			OrderID:        orderID,
			OrderedAt:      at,
			FirstName:      first,
			LastName:       last,
			Email:          o.CustomerEmail,
			Phone:          o.CustomerPhone,
			DeliveryMethod: o.DeliveryMethod,
			ItemNumber:     it.ItemNumber,
			ItemName:       it.Name,
			Quantity:       cast.ToString(it.Quantity),
			PriceEach:      fmt.Sprintf("%.2f", it.Price),
			ItemTotal:      fmt.Sprintf("%.2f", it.Price*float64(it.Quantity)),
			Status:         "New",
		})
	}
	rows = append(rows, domain.OrderRow{
		OrderID:        orderID,
		OrderedAt:      at,
		FirstName:      first,
		LastName:       last,
		Email:          o.CustomerEmail,
		Phone:          o.CustomerPhone,
		DeliveryMethod: o.DeliveryMethod,
		ItemName:       domain.SummaryItemName,
		Subtotal:       fmt.Sprintf("%.2f", t.Subtotal),
		DeliveryFee:    fmt.Sprintf("%.2f", t.Fee),
		Total:          fmt.Sprintf("%.2f", t.Total),
		Status:         "New",
	})
	return rows
}

// Writer appends orders to the database.
type Writer struct {
	db *gorm.DB
}

func NewWriter(db *gorm.DB) *Writer {
	return &Writer{db: db}
}

// Append assigns the next order ID and writes all rows in one
// transaction so a failed insert never leaves a partial order behind.
func (w *Writer) Append(ctx context.Context, o Order) (string, error) {
	if err := o.Validate(); err != nil {
		return "", err
	}

	var orderID string
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last domain.OrderRow
		err := tx.Order("id DESC").First(&last).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(err, "read last order row")
		}
		orderID = NextOrderID(last.OrderID, o.DeliveryMethod)

		rows := BuildRows(orderID, o, time.Now())
		if err := tx.Create(&rows).Error; err != nil {
			return errors.Wrap(err, "append order rows")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}
