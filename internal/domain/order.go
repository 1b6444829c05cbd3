package domain

import "time"

// Fulfillment methods accepted by the order writer.
const (
	MethodDelivery = "delivery"
	MethodShipping = "shipping"
)

// OrderRow mirrors one row of the orders sheet. An order is appended as
// one row per line item followed by a summary row whose ItemName is
// SummaryItemName; item rows leave the subtotal/fee/total columns empty
// and the summary row leaves the per-item columns empty. Keeping the
// sheet layout intact lets the export endpoints reproduce it exactly.
type OrderRow struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID        string    `gorm:"size:16;index" json:"order_id"`
	OrderedAt      time.Time `gorm:"index" json:"ordered_at"`
	FirstName      string    `gorm:"size:100" json:"first_name"`
	LastName       string    `gorm:"size:100" json:"last_name"`
	Email          string    `gorm:"size:200" json:"email"`
	Phone          string    `gorm:"size:40" json:"phone"`
	DeliveryMethod string    `gorm:"size:20;index" json:"delivery_method"`
	ItemNumber     string    `gorm:"size:64" json:"item_number"`
	ItemName       string    `gorm:"size:200" json:"item_name"`
	Quantity       string    `gorm:"size:16" json:"quantity"`
	PriceEach      string    `gorm:"size:16" json:"price_each"`
	ItemTotal      string    `gorm:"size:16" json:"item_total"`
	Subtotal       string    `gorm:"size:16" json:"subtotal"`
	DeliveryFee    string    `gorm:"size:16" json:"delivery_fee"`
	Total          string    `gorm:"size:16" json:"total"`
	Status         string    `gorm:"size:20;index;default:'New'" json:"status"`
}

// SummaryItemName marks the totals row of an order.
const SummaryItemName = "ORDER TOTAL"

// SpecialRequest is a free-form customer request submitted outside the
// ordering flow (custom cuts, bulk pricing and the like).
type SpecialRequest struct {
	ID        int64     `gorm:"primaryKey" json:"id"` // snowflake
	Name      string    `gorm:"size:200" json:"name"`
	Email     string    `gorm:"size:200" json:"email"`
	Phone     string    `gorm:"size:40" json:"phone"`
	Details   string    `gorm:"type:text" json:"details"`
	Status    string    `gorm:"size:20;index;default:'New'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
