package webapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/araddon/dateparse"
	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"
	"github.com/spf13/cast"
	"golang.org/x/crypto/bcrypt"

	"github.com/primecut/storefront/internal/domain"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// adminLogin verifies the operator credentials and issues an HS256
// token for the admin group.
func (s *WebServer) adminLogin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login")
	}

	var operator domain.SysOpr
	err := s.app.DB().Where("username = ? and status = ?", payload.Username, "enabled").
		First(&operator).Error
	if err != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(payload.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password")
	}

	ttl := time.Duration(s.app.Config().Web.TokenTTL) * time.Hour
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": operator.Username,
		"level":    operator.Level,
		"exp":      time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(s.app.Config().Web.Secret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to sign token")
	}

	s.app.DB().Model(&domain.SysOpr{}).Where("id = ?", operator.ID).
		Update("last_login", time.Now())

	return ok(c, map[string]interface{}{"token": signed})
}

var exportColumns = []string{
	"Order ID", "Date/Time", "First Name", "Last Name", "Email", "Phone",
	"Delivery Method", "Item Name", "Quantity", "Price Each", "Item Total",
	"Subtotal", "Delivery Fee", "Total", "Status",
}

// exportOrders streams the orders sheet as an XLSX workbook, optionally
// windowed by from/to dates in any common format.
func (s *WebServer) exportOrders(c echo.Context) error {
	db := s.app.DB().Model(&domain.OrderRow{})

	if from := strings.TrimSpace(c.QueryParam("from")); from != "" {
		t, err := dateparse.ParseAny(from)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unable to parse from date")
		}
		db = db.Where("ordered_at >= ?", t)
	}
	if to := strings.TrimSpace(c.QueryParam("to")); to != "" {
		t, err := dateparse.ParseAny(to)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_DATE", "Unable to parse to date")
		}
		db = db.Where("ordered_at <= ?", t)
	}

	var rows []domain.OrderRow
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders")
	}

	const sheet = "Sheet1"
	book := excelize.NewFile()
	for i, col := range exportColumns {
		book.SetCellValue(sheet, axis(i, 1), col)
	}
	for n, row := range rows {
		cells := []string{
			row.OrderID,
			row.OrderedAt.Format("1/2/2006, 3:04:05 PM"),
			row.FirstName, row.LastName, row.Email, row.Phone,
			row.DeliveryMethod, row.ItemName, row.Quantity,
			row.PriceEach, row.ItemTotal,
			row.Subtotal, row.DeliveryFee, row.Total, row.Status,
		}
		for i, cell := range cells {
			book.SetCellValue(sheet, axis(i, n+2), cell)
		}
	}

	name := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return book.Write(c.Response().Writer)
}

// axis converts a zero-based column and one-based row into an A1 cell
// reference. Fifteen columns keeps this in the single-letter range.
func axis(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row)
}

// orderStats summarizes order values from the sheet's summary rows.
func (s *WebServer) orderStats(c echo.Context) error {
	var rows []domain.OrderRow
	err := s.app.DB().
		Where("item_name = ?", domain.SummaryItemName).
		Find(&rows).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders")
	}

	totals := make([]float64, 0, len(rows))
	deliveries := 0
	for _, row := range rows {
		totals = append(totals, cast.ToFloat64(row.Total))
		if row.DeliveryMethod == domain.MethodDelivery {
			deliveries++
		}
	}

	summary := map[string]interface{}{
		"orders":     len(totals),
		"deliveries": deliveries,
		"shipments":  len(totals) - deliveries,
	}
	if len(totals) > 0 {
		sum, _ := stats.Sum(totals)
		mean, _ := stats.Mean(totals)
		median, _ := stats.Median(totals)
		max, _ := stats.Max(totals)
		summary["revenue"] = sum
		summary["mean_order_value"] = mean
		summary["median_order_value"] = median
		summary["largest_order"] = max
	}
	return ok(c, summary)
}

// runBackup triggers the off-site orders backup outside its schedule.
func (s *WebServer) runBackup(c echo.Context) error {
	if !s.app.Config().Backup.Enabled {
		return fail(c, http.StatusBadRequest, "BACKUP_DISABLED", "Backup is not configured")
	}
	if err := s.app.RunBackupNow(c.Request().Context()); err != nil {
		return fail(c, http.StatusInternalServerError, "BACKUP_FAILED", err.Error())
	}
	return ok(c, map[string]interface{}{"status": "completed"})
}
