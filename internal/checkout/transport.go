package checkout

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/primecut/storefront/internal/pricing"
)

// Transport is one submission strategy. Each transport is attempted at
// most once per submission and the chain is strictly sequential, so an
// order can never be written twice.
type Transport interface {
	Name() string
	Send(ctx context.Context, sub Submission) error
}

// EndpointTransport POSTs the order to the configured write endpoint.
//
// The original front end calls this endpoint in a mode that cannot
// observe the response, so processing was never confirmable; the
// contract here keeps that trade-off: a request that left the machine
// counts as success, only a failure to send falls through to the next
// transport. The status code is logged for operators but not acted on.
type EndpointTransport struct {
	URL string
}

func (t *EndpointTransport) Name() string { return "endpoint" }

func (t *EndpointTransport) Send(ctx context.Context, sub Submission) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return errors.Wrap(err, "serialize order")
	}
	code := 0
	err = gout.POST(t.URL).
		WithContext(ctx).
		SetHeader(gout.H{"Content-Type": "application/json"}).
		SetBody(body).
		Code(&code).
		Do()
	if err != nil {
		return errors.Wrap(err, "post order")
	}
	zap.L().Info("order posted to endpoint", zap.Int("status", code))
	return nil
}

// WidgetTransport sends the order through the transactional email
// widget's REST API. Unlike the endpoint, the widget reports success or
// failure, so a bad status fails the attempt.
type WidgetTransport struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
}

func (t *WidgetTransport) Name() string { return "widget" }

func (t *WidgetTransport) Send(ctx context.Context, sub Submission) error {
	if t.ServiceID == "" || t.TemplateID == "" {
		return errors.New("email widget not configured")
	}
	body, err := json.Marshal(map[string]interface{}{
		"service_id":      t.ServiceID,
		"template_id":     t.TemplateID,
		"user_id":         t.PublicKey,
		"template_params": t.params(sub),
	})
	if err != nil {
		return errors.Wrap(err, "serialize widget payload")
	}
	code := 0
	err = gout.POST(t.Endpoint).
		WithContext(ctx).
		SetHeader(gout.H{"Content-Type": "application/json"}).
		SetBody(body).
		Code(&code).
		Do()
	if err != nil {
		return errors.Wrap(err, "send via widget")
	}
	if code != http.StatusOK {
		return errors.Errorf("widget rejected send: status %d", code)
	}
	return nil
}

// params maps the order to the widget template variables.
func (t *WidgetTransport) params(sub Submission) map[string]string {
	total := "Call for Total"
	method := "Shipping"
	if sub.Method() == pricing.Delivery {
		total = fmt.Sprintf("%.2f", sub.Subtotal()+pricing.DeliveryFee)
		method = "Delivery"
	}
	return map[string]string{
		"to_email":        sub.CustomerEmail,
		"from_name":       sub.CustomerName,
		"from_email":      sub.CustomerEmail,
		"phone":           sub.CustomerPhone,
		"delivery_method": method,
		"order_details":   renderDetails(sub),
		"total":           total,
	}
}

// exportRow matches the canonical local export header.
type exportRow struct {
	OrderDate       string `csv:"Order Date"`
	CustomerName    string `csv:"Customer Name"`
	Email           string `csv:"Email"`
	Phone           string `csv:"Phone"`
	ItemDescription string `csv:"Item Description"`
	Quantity        int    `csv:"Quantity"`
	Price           string `csv:"Price"`
	Total           string `csv:"Total"`
}

// ExportTransport writes the order to order_<timestamp>.csv in the
// configured directory so the customer can deliver it manually. It is
// the last link of the chain and succeeds unless the filesystem itself
// fails.
type ExportTransport struct {
	Dir string

	lastPath string
}

func (t *ExportTransport) Name() string { return "local export" }

// LastPath reports where the most recent export landed.
func (t *ExportTransport) LastPath() string { return t.lastPath }

func (t *ExportTransport) Send(_ context.Context, sub Submission) error {
	rows := ExportRows(sub, time.Now())
	name := fmt.Sprintf("order_%d.csv", time.Now().UnixMilli())
	path := filepath.Join(t.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create export file")
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return errors.Wrap(err, "write export file")
	}
	t.lastPath = path
	return nil
}

// ExportRows renders one CSV row per line item with the timestamp in
// the first column, amounts fixed to two decimals.
func ExportRows(sub Submission, at time.Time) []exportRow {
	stamp := at.UTC().Format(time.RFC3339)
	rows := make([]exportRow, 0, len(sub.Items))
	for _, it := range sub.Items {
		rows = append(rows, exportRow{
			OrderDate:       stamp,
			CustomerName:    sub.CustomerName,
			Email:           sub.CustomerEmail,
			Phone:           sub.CustomerPhone,
			ItemDescription: it.Name,
			Quantity:        it.Quantity,
			Price:           fmt.Sprintf("%.2f", it.Price),
			Total:           fmt.Sprintf("%.2f", it.Price*float64(it.Quantity)),
		})
	}
	return rows
}
