package webapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/primecut/storefront/internal/domain"
)

type productPayload struct {
	ItemNumber string  `json:"item_number"`
	ItemDesc   string  `json:"item_description"`
	Category   string  `json:"category"`
	Retail     float64 `json:"retail"`
	MinQty     *int    `json:"minimum_order_quantity"`
	Image      string  `json:"image"`
	Status     string  `json:"status"`
}

// listProducts pages the catalog table for the admin UI, including
// disabled products the public catalog endpoint hides.
func (s *WebServer) listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	db := s.app.DB().Model(&domain.Product{})

	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		db = db.Where("LOWER(item_desc) LIKE ? OR LOWER(category) LIKE ? OR item_number LIKE ?",
			like, like, "%"+q+"%")
	}
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products")
	}
	var rows []domain.Product
	if err := db.Order("category, id").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products")
	}
	return paged(c, rows, total, page, pageSize)
}

func (s *WebServer) getProduct(c echo.Context) error {
	var product domain.Product
	if err := s.app.DB().First(&product, cast.ToInt64(c.Param("id"))).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
	}
	return ok(c, product)
}

func (s *WebServer) createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product")
	}
	if strings.TrimSpace(payload.ItemDesc) == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Item description is required")
	}
	if payload.Retail < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Retail price cannot be negative")
	}

	product := domain.Product{
		ItemNumber: strings.TrimSpace(payload.ItemNumber),
		ItemDesc:   strings.TrimSpace(payload.ItemDesc),
		Category:   strings.TrimSpace(payload.Category),
		Retail:     payload.Retail,
		MinQty:     1,
		Image:      payload.Image,
		Status:     "enabled",
	}
	if payload.MinQty != nil && *payload.MinQty > 1 {
		product.MinQty = *payload.MinQty
	}
	if payload.Status == "disabled" {
		product.Status = "disabled"
	}
	if err := s.app.DB().Create(&product).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "WRITE_FAILED", "Failed to create product")
	}
	return ok(c, product)
}

func (s *WebServer) updateProduct(c echo.Context) error {
	var product domain.Product
	if err := s.app.DB().First(&product, cast.ToInt64(c.Param("id"))).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product")
	}
	if strings.TrimSpace(payload.ItemDesc) == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Item description is required")
	}
	if payload.Retail < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Retail price cannot be negative")
	}

	product.ItemNumber = strings.TrimSpace(payload.ItemNumber)
	product.ItemDesc = strings.TrimSpace(payload.ItemDesc)
	product.Category = strings.TrimSpace(payload.Category)
	product.Retail = payload.Retail
	product.Image = payload.Image
	if payload.MinQty != nil && *payload.MinQty >= 1 {
		product.MinQty = *payload.MinQty
	}
	if payload.Status == "enabled" || payload.Status == "disabled" {
		product.Status = payload.Status
	}
	if err := s.app.DB().Save(&product).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "WRITE_FAILED", "Failed to update product")
	}
	return ok(c, product)
}

// deleteProduct disables a product rather than removing the row, so
// historical orders keep resolving their item numbers.
func (s *WebServer) deleteProduct(c echo.Context) error {
	result := s.app.DB().Model(&domain.Product{}).
		Where("id = ?", cast.ToInt64(c.Param("id"))).
		Update("status", "disabled")
	if result.Error != nil {
		return fail(c, http.StatusInternalServerError, "WRITE_FAILED", "Failed to disable product")
	}
	if result.RowsAffected == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
	}
	return ok(c, map[string]interface{}{"status": "disabled"})
}
