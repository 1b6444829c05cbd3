// Package mailer sends order confirmation emails over SMTP. Sends are
// queued on a worker pool so the order endpoint never waits on the
// mail server.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/primecut/storefront/config"
	"github.com/primecut/storefront/internal/ordersheet"
)

type Mailer struct {
	cfg      config.SmtpConfig
	business string
	pool     *ants.Pool
	tpl      *template.Template
}

func New(cfg config.SmtpConfig, businessName string) (*Mailer, error) {
	pool, err := ants.NewPool(4)
	if err != nil {
		return nil, errors.Wrap(err, "create mail pool")
	}
	return &Mailer{
		cfg:      cfg,
		business: businessName,
		pool:     pool,
		tpl:      template.Must(template.New("confirmation").Parse(confirmationTpl)),
	}, nil
}

func (m *Mailer) Close() {
	m.pool.Release()
}

type itemView struct {
	Name     string
	Quantity int
	Price    string
	Total    string
}

type confirmationView struct {
	Business    string
	OrderID     string
	Date        string
	Name        string
	Email       string
	Phone       string
	MethodLabel string
	Items       []itemView
	Subtotal    string
	HasFee      bool
	Fee         string
	Total       string
	Internal    bool
}

// QueueOrderConfirmation renders the confirmation and queues the
// customer copy plus the business copy with the internal note.
func (m *Mailer) QueueOrderConfirmation(o ordersheet.Order, orderID string) {
	if !m.cfg.Enabled {
		return
	}

	customer, err := m.render(o, orderID, false)
	if err != nil {
		zap.L().Error("failed to render confirmation email", zap.Error(err))
		return
	}
	internal, err := m.render(o, orderID, true)
	if err != nil {
		zap.L().Error("failed to render internal email", zap.Error(err))
		return
	}

	m.queue(o.CustomerEmail,
		fmt.Sprintf("Order Confirmation #%s - %s", orderID, m.business), customer)
	m.queue(m.cfg.OrdersInbox,
		fmt.Sprintf("New Order #%s from %s", orderID, o.CustomerName), internal)
}

// QueueRequestNotice tells the business inbox about a special request.
func (m *Mailer) QueueRequestNotice(name, email, phone, details string) {
	if !m.cfg.Enabled {
		return
	}
	body := fmt.Sprintf(
		"<p>New special request from <strong>%s</strong> (%s, %s):</p><p>%s</p>",
		template.HTMLEscapeString(name), template.HTMLEscapeString(email),
		template.HTMLEscapeString(phone), template.HTMLEscapeString(details))
	m.queue(m.cfg.OrdersInbox,
		fmt.Sprintf("Special Request from %s - %s", name, m.business), body)
}

func (m *Mailer) render(o ordersheet.Order, orderID string, internal bool) (string, error) {
	t := o.Totals()
	view := confirmationView{
		Business:    m.business,
		OrderID:     orderID,
		Date:        time.Now().Format("1/2/2006, 3:04:05 PM"),
		Name:        o.CustomerName,
		Email:       o.CustomerEmail,
		Phone:       o.CustomerPhone,
		MethodLabel: methodLabel(o.DeliveryMethod),
		Subtotal:    fmt.Sprintf("%.2f", t.Subtotal),
		HasFee:      t.Fee > 0,
		Fee:         fmt.Sprintf("%.2f", t.Fee),
		Total:       fmt.Sprintf("%.2f", t.Total),
		Internal:    internal,
	}
	for _, it := range o.Items {
		view.Items = append(view.Items, itemView{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    fmt.Sprintf("%.2f", it.Price),
			Total:    fmt.Sprintf("%.2f", it.Price*float64(it.Quantity)),
		})
	}

	var buf bytes.Buffer
	if err := m.tpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func methodLabel(method string) string {
	if method == "delivery" {
		return "Delivery ($20.00)"
	}
	return "Shipping (Call for Cost)"
}

func (m *Mailer) queue(to, subject, htmlBody string) {
	err := m.pool.Submit(func() {
		msg := gomail.NewMessage()
		msg.SetHeader("From", m.cfg.From)
		msg.SetHeader("To", to)
		msg.SetHeader("Subject", subject)
		msg.SetBody("text/html", htmlBody)

		d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
		if err := d.DialAndSend(msg); err != nil {
			zap.L().Error("failed to send email",
				zap.String("to", to), zap.String("subject", subject), zap.Error(err))
			return
		}
		zap.L().Info("email sent", zap.String("to", to), zap.String("subject", subject))
	})
	if err != nil {
		zap.L().Error("failed to queue email", zap.Error(err))
	}
}

const confirmationTpl = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #b8860b;">{{.Business}} - Order Confirmation</h2>
  <p><strong>Order ID:</strong> {{.OrderID}}</p>
  <p><strong>Date:</strong> {{.Date}}</p>

  <h3>Customer Information</h3>
  <p>
    <strong>Name:</strong> {{.Name}}<br>
    <strong>Email:</strong> {{.Email}}<br>
    <strong>Phone:</strong> {{.Phone}}<br>
    <strong>Delivery Method:</strong> {{.MethodLabel}}
  </p>

  <h3>Order Items</h3>
  <table style="width: 100%; border-collapse: collapse;">
    <thead>
      <tr style="background-color: #f0f0f0;">
        <th style="padding: 8px; border: 1px solid #ddd; text-align: left;">Item</th>
        <th style="padding: 8px; border: 1px solid #ddd; text-align: center;">Quantity</th>
        <th style="padding: 8px; border: 1px solid #ddd; text-align: right;">Price</th>
        <th style="padding: 8px; border: 1px solid #ddd; text-align: right;">Total</th>
      </tr>
    </thead>
    <tbody>
      {{range .Items}}
      <tr>
        <td style="padding: 8px; border: 1px solid #ddd;">{{.Name}}</td>
        <td style="padding: 8px; border: 1px solid #ddd; text-align: center;">{{.Quantity}}</td>
        <td style="padding: 8px; border: 1px solid #ddd; text-align: right;">${{.Price}}</td>
        <td style="padding: 8px; border: 1px solid #ddd; text-align: right;">${{.Total}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <div style="margin-top: 20px; text-align: right;">
    <p><strong>Subtotal:</strong> ${{.Subtotal}}</p>
    {{if .HasFee}}<p><strong>Delivery Fee:</strong> ${{.Fee}}</p>{{end}}
    <p style="font-size: 1.2em;"><strong>Total:</strong> ${{.Total}}</p>
  </div>

  <hr style="margin: 30px 0;">
  <p style="color: #666; font-size: 12px;">
    Thank you for your order! We will contact you shortly to confirm delivery/shipping details.
  </p>
  {{if .Internal}}
  <div style="background-color: #fffacd; padding: 10px; margin-top: 20px; border: 1px solid #b8860b;">
    <p><strong>INTERNAL NOTE:</strong> This is a new order requiring processing.</p>
  </div>
  {{end}}
</div>
`
