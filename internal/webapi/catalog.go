package webapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/primecut/storefront/internal/domain"
)

// getCatalog serves the product table in the sheet-values shape the
// front end was written against: row 0 is the header row, every
// enabled product becomes one data row.
func (s *WebServer) getCatalog(c echo.Context) error {
	var products []domain.Product
	err := s.app.DB().
		Where("status = ?", "enabled").
		Order("category, id").
		Find(&products).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   "Failed to load catalog",
		})
	}

	values := make([][]string, 0, len(products)+1)
	values = append(values, domain.CatalogHeaders)
	for _, p := range products {
		values = append(values, []string{
			p.ItemNumber,
			p.ItemDesc,
			p.Category,
			fmt.Sprintf("%.2f", p.Retail),
			cast.ToString(p.MinQty),
			p.Image,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"values":  values,
	})
}
