package domain

import "time"

// Product is one row of the catalog sheet. Column names follow the
// spreadsheet headers the storefront was originally driven by, so the
// values payload can be rebuilt verbatim from the table.
type Product struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemNumber string    `gorm:"size:64;index" json:"item_number"`
	ItemDesc   string    `gorm:"size:200;index" json:"item_description"`
	Category   string    `gorm:"size:100;index" json:"category"`
	Retail     float64   `json:"retail"` // unit price in dollars
	MinQty     int       `gorm:"default:1" json:"minimum_order_quantity"`
	Image      string    `gorm:"size:1024" json:"image"`
	Status     string    `gorm:"size:20;index;default:'enabled'" json:"status"` // enabled|disabled
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CatalogHeaders is the header row served by the catalog endpoint.
// Clients normalize these to lower_snake form before keying cells.
var CatalogHeaders = []string{
	"Item Number",
	"Item Description",
	"Category",
	"Retail",
	"Minimum Order Quantity",
	"Image",
}
