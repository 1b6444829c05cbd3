// Package catalog loads the product catalog from a sheet-values
// endpoint and turns rows into typed product records.
package catalog

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/guonaihong/gout"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Payload is the wire shape of the catalog read endpoint: row 0 is the
// header row, rows 1..n are data rows of cell strings.
type Payload struct {
	Success bool       `json:"success"`
	Values  [][]string `json:"values"`
	Error   string     `json:"error,omitempty"`
}

var (
	// ErrUnavailable covers network failures and non-2xx responses.
	ErrUnavailable = errors.New("catalog endpoint unavailable")
	// ErrPayload means the endpoint answered but signalled failure.
	ErrPayload = errors.New("catalog payload signalled failure")
	// ErrEmpty means the sheet had a header row but no data rows.
	ErrEmpty = errors.New("catalog has no data rows")
	// ErrColumns means required columns are missing from the header row.
	ErrColumns = errors.New("catalog is missing required columns")
)

// Product is one catalog row keyed by its normalized sheet headers.
// The price column is labelled "retail" on the private sheet and
// "price" on the public one; UnitPrice handles both.
type Product struct {
	ItemNumber string            `mapstructure:"item_number"`
	ItemDesc   string            `mapstructure:"item_description"`
	Category   string            `mapstructure:"category"`
	Retail     string            `mapstructure:"retail"`
	Price      string            `mapstructure:"price"`
	MinOrder   string            `mapstructure:"minimum_order_quantity"`
	Image      string            `mapstructure:"image"`
	Extra      map[string]string `mapstructure:",remain"`
}

// UnitPrice parses the price cell, preferring the retail column.
// Unparseable cells default to 0.
func (p Product) UnitPrice() float64 {
	cell := p.Retail
	if strings.TrimSpace(cell) == "" {
		cell = p.Price
	}
	v, err := cast.ToFloat64E(strings.TrimPrefix(strings.TrimSpace(cell), "$"))
	if err != nil {
		return 0
	}
	return v
}

// MinQty parses the minimum order quantity cell; absent or invalid
// cells mean no minimum, i.e. 1.
func (p Product) MinQty() int {
	v, err := cast.ToIntE(strings.TrimSpace(p.MinOrder))
	if err != nil || v < 1 {
		return 1
	}
	return v
}

// Loader fetches and parses the catalog from a single endpoint.
type Loader struct {
	url string
}

func NewLoader(url string) *Loader {
	return &Loader{url: url}
}

// Load issues one GET to the endpoint and parses the values payload.
// Callers bound the attempt with the context deadline.
func (l *Loader) Load(ctx context.Context) ([]Product, error) {
	var payload Payload
	code := 0
	err := gout.GET(l.url).
		WithContext(ctx).
		Code(&code).
		BindJSON(&payload).
		Do()
	if err != nil {
		return nil, errors.Wrap(ErrUnavailable, err.Error())
	}
	if code != http.StatusOK {
		return nil, errors.Wrapf(ErrUnavailable, "status %d", code)
	}
	if !payload.Success {
		if payload.Error != "" {
			return nil, errors.Wrap(ErrPayload, payload.Error)
		}
		return nil, ErrPayload
	}
	return Parse(payload.Values)
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeHeader lowers a sheet header and collapses whitespace runs
// to underscores: "Minimum Order Quantity" -> "minimum_order_quantity".
func NormalizeHeader(h string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), "_")
}

// Parse builds one product per non-empty data row, mapping each cell
// positionally to its normalized header. Rows whose first cell is empty
// are skipped. The header row must carry an item description and one of
// the two price columns.
func Parse(values [][]string) ([]Product, error) {
	if len(values) < 2 {
		return nil, ErrEmpty
	}

	headers := make([]string, len(values[0]))
	for i, h := range values[0] {
		headers[i] = NormalizeHeader(h)
	}
	if err := checkColumns(headers); err != nil {
		return nil, err
	}

	var products []Product
	for _, row := range values[1:] {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		record := make(map[string]string, len(headers))
		for i, header := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			record[header] = cell
		}
		var p Product
		if err := mapstructure.Decode(record, &p); err != nil {
			return nil, errors.Wrap(err, "decode catalog row")
		}
		products = append(products, p)
	}
	if len(products) == 0 {
		return nil, ErrEmpty
	}
	return products, nil
}

func checkColumns(headers []string) error {
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		seen[h] = true
	}
	if !seen["item_description"] {
		return errors.Wrap(ErrColumns, "item_description")
	}
	if !seen["retail"] && !seen["price"] {
		return errors.Wrap(ErrColumns, "retail or price")
	}
	return nil
}
