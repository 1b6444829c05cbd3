package webapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/primecut/storefront/internal/domain"
)

type specialRequestPayload struct {
	Name    string `json:"from_name"`
	Email   string `json:"from_email"`
	Phone   string `json:"phone"`
	Details string `json:"request_details"`
}

// postSpecialRequest is the second writer the site deploys: free-form
// requests outside the ordering flow. Name, email and details are
// required; phone is optional.
func (s *WebServer) postSpecialRequest(c echo.Context) error {
	var payload specialRequestPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request")
	}

	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Details = strings.TrimSpace(payload.Details)
	if payload.Name == "" || payload.Email == "" || payload.Details == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name, email and details are required")
	}
	if payload.Phone == "" {
		payload.Phone = "Not provided"
	}

	req := domain.SpecialRequest{
		ID:      s.app.NextID(),
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Details: payload.Details,
		Status:  "New",
	}
	if err := s.app.DB().Create(&req).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "WRITE_FAILED", "Failed to record request")
	}

	if s.mail != nil {
		s.mail.QueueRequestNotice(req.Name, req.Email, req.Phone, req.Details)
	}
	return ok(c, map[string]interface{}{"id": req.ID})
}

func (s *WebServer) listSpecialRequests(c echo.Context) error {
	page, pageSize := parsePagination(c)
	db := s.app.DB().Model(&domain.SpecialRequest{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query requests")
	}
	var rows []domain.SpecialRequest
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query requests")
	}
	return paged(c, rows, total, page, pageSize)
}
