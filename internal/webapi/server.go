// Package webapi exposes the storefront HTTP surface: the catalog read
// endpoint, the order and special-request writers, and the
// JWT-protected admin views of the orders sheet.
package webapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/primecut/storefront/internal/app"
	"github.com/primecut/storefront/internal/mailer"
	"github.com/primecut/storefront/internal/ordersheet"
)

type WebServer struct {
	app    *app.Application
	mail   *mailer.Mailer
	writer *ordersheet.Writer
	root   *echo.Echo
}

func NewWebServer(application *app.Application, mail *mailer.Mailer) *WebServer {
	s := &WebServer{
		app:    application,
		mail:   mail,
		writer: ordersheet.NewWriter(application.DB()),
		root:   echo.New(),
	}
	s.root.HideBanner = true
	s.root.Use(middleware.Recover())
	s.root.Use(middleware.CORS())
	s.root.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Info("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	s.initRouter()
	return s
}

func (s *WebServer) initRouter() {
	api := s.root.Group("/api")
	api.GET("/health", s.health)
	api.GET("/catalog", s.getCatalog)
	api.POST("/orders", s.postOrder)
	api.POST("/requests", s.postSpecialRequest)
	api.POST("/admin/login", s.adminLogin)

	admin := api.Group("/admin", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(s.app.Config().Web.Secret),
	}))
	admin.GET("/orders", s.listOrders)
	admin.GET("/orders/export", s.exportOrders)
	admin.GET("/orders/stats", s.orderStats)
	admin.GET("/requests", s.listSpecialRequests)
	admin.GET("/products", s.listProducts)
	admin.GET("/products/:id", s.getProduct)
	admin.POST("/products", s.createProduct)
	admin.PUT("/products/:id", s.updateProduct)
	admin.DELETE("/products/:id", s.deleteProduct)
	admin.POST("/backup", s.runBackup)
}

// Start blocks serving HTTP until Shutdown.
func (s *WebServer) Start() error {
	cfg := s.app.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.L().Info("storefront web server starting", zap.String("addr", addr))
	err := s.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

// ok and fail are the response envelope helpers shared by every
// handler.
func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"code":    code,
		"error":   message,
	})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"data":     rows,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page, pageSize = 1, 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}
