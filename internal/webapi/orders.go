package webapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/primecut/storefront/internal/domain"
	"github.com/primecut/storefront/internal/ordersheet"
)

// postOrder is the order write endpoint: append sheet rows, then queue
// the confirmation emails. The front end may never read this response
// (its transport is fire-and-forget), so the row append must be the
// source of truth, not the reply.
func (s *WebServer) postOrder(c echo.Context) error {
	var order ordersheet.Order
	if err := c.Bind(&order); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order")
	}
	if err := order.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ORDER", err.Error())
	}

	orderID, err := s.writer.Append(c.Request().Context(), order)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "WRITE_FAILED", "Failed to record order")
	}

	if s.mail != nil {
		s.mail.QueueOrderConfirmation(order, orderID)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"orderId": orderID,
		"message": "Order submitted successfully",
	})
}

// listOrders pages through the raw sheet rows, optionally filtered by
// order ID or customer text.
func (s *WebServer) listOrders(c echo.Context) error {
	page, pageSize := parsePagination(c)
	db := s.app.DB().Model(&domain.OrderRow{})

	if id := strings.TrimSpace(c.QueryParam("order_id")); id != "" {
		db = db.Where("order_id = ?", id)
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		db = db.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(item_name) LIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders")
	}

	var rows []domain.OrderRow
	if err := db.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders")
	}
	return paged(c, rows, total, page, pageSize)
}
