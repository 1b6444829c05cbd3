package checkout_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primecut/storefront/internal/cart"
	"github.com/primecut/storefront/internal/catalog"
	"github.com/primecut/storefront/internal/checkout"
	"github.com/primecut/storefront/internal/pricing"
	"github.com/primecut/storefront/internal/validate"
)

type fakeTransport struct {
	name  string
	err   error
	calls int
}

func (f *fakeTransport) Name() string { return f.name }

func (f *fakeTransport) Send(_ context.Context, _ checkout.Submission) error {
	f.calls++
	return f.err
}

func validFields() validate.Fields {
	return validate.Fields{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "555-123-4567",
	}
}

func cartEntries() []cart.Entry {
	return []cart.Entry{
		{Index: 0, Quantity: 2, Product: catalog.Product{
			ItemNumber: "1001", ItemDesc: "Ribeye Steak", Retail: "32.50"}},
		{Index: 1, Quantity: 1, Product: catalog.Product{
			ItemNumber: "1002", ItemDesc: "Filet Mignon", Retail: "28.00"}},
	}
}

func TestBeginRequiresMethod(t *testing.T) {
	p := checkout.NewPipeline(nil, time.Second, nil, nil)
	_, err := p.Begin(validFields(), cartEntries(), pricing.None)
	assert.ErrorIs(t, err, checkout.ErrNoMethod)
	assert.Equal(t, checkout.StateIdle, p.State())
}

func TestBeginRequiresValidForm(t *testing.T) {
	p := checkout.NewPipeline(nil, time.Second, nil, nil)

	bad := validFields()
	bad.Email = "test@test"
	_, err := p.Begin(bad, cartEntries(), pricing.Delivery)
	assert.ErrorIs(t, err, checkout.ErrInvalidForm)

	_, err = p.Begin(validFields(), nil, pricing.Delivery)
	assert.ErrorIs(t, err, checkout.ErrInvalidForm)
	assert.Equal(t, checkout.StateIdle, p.State())
}

func TestBeginRendersSummary(t *testing.T) {
	p := checkout.NewPipeline(nil, time.Second, nil, nil)
	summary, err := p.Begin(validFields(), cartEntries(), pricing.Delivery)
	require.NoError(t, err)
	assert.Equal(t, checkout.StateConfirming, p.State())

	assert.Contains(t, summary, "Jane Doe")
	assert.Contains(t, summary, "Ribeye Steak")
	assert.Contains(t, summary, "Quantity: 2 @ $32.50 each = $65.00")
	assert.Contains(t, summary, "Subtotal: $93.00")
	assert.Contains(t, summary, "Delivery: $20.00")
	assert.Contains(t, summary, "Order Total: $113.00")
}

func TestBeginShippingSummary(t *testing.T) {
	p := checkout.NewPipeline(nil, time.Second, nil, nil)
	summary, err := p.Begin(validFields(), cartEntries(), pricing.Shipping)
	require.NoError(t, err)
	assert.Contains(t, summary, "Shipping: Call for Cost")
	assert.Contains(t, summary, "Order Total: Call for Total")
	assert.NotContains(t, summary, "$113.00")
}

func TestCancelNoSideEffects(t *testing.T) {
	resets := 0
	primary := &fakeTransport{name: "endpoint"}
	p := checkout.NewPipeline([]checkout.Transport{primary}, time.Second, nil,
		func() { resets++ })

	_, err := p.Begin(validFields(), cartEntries(), pricing.Delivery)
	require.NoError(t, err)
	require.NoError(t, p.Cancel())

	assert.Equal(t, checkout.StateIdle, p.State())
	assert.Zero(t, primary.calls)
	assert.Zero(t, resets)
	assert.Empty(t, p.Summary())
}

func TestCancelOutsideConfirming(t *testing.T) {
	p := checkout.NewPipeline(nil, time.Second, nil, nil)
	assert.ErrorIs(t, p.Cancel(), checkout.ErrNotConfirming)
}

func TestConfirmOutsideConfirming(t *testing.T) {
	p := checkout.NewPipeline(nil, time.Second, nil, nil)
	_, err := p.Confirm(context.Background())
	assert.ErrorIs(t, err, checkout.ErrNotConfirming)
}

func TestConfirmPrimarySucceeds(t *testing.T) {
	resets := 0
	primary := &fakeTransport{name: "endpoint"}
	fallback := &fakeTransport{name: "widget"}
	p := checkout.NewPipeline([]checkout.Transport{primary, fallback}, time.Second, nil,
		func() { resets++ })

	_, err := p.Begin(validFields(), cartEntries(), pricing.Delivery)
	require.NoError(t, err)

	out, err := p.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, checkout.StateSucceeded, out.State)
	assert.Equal(t, "endpoint", out.Transport)
	assert.Equal(t, 1, primary.calls)
	assert.Zero(t, fallback.calls)
	assert.Equal(t, 1, resets)
	assert.Equal(t, checkout.StateIdle, p.State())
}

func TestConfirmFallsBackOnce(t *testing.T) {
	primary := &fakeTransport{name: "endpoint", err: errors.New("connection refused")}
	fallback := &fakeTransport{name: "widget"}
	p := checkout.NewPipeline([]checkout.Transport{primary, fallback}, time.Second, nil, nil)

	_, err := p.Begin(validFields(), cartEntries(), pricing.Delivery)
	require.NoError(t, err)

	out, err := p.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, checkout.StateSucceeded, out.State)
	assert.Equal(t, "widget", out.Transport)
	// Each transport runs at most once.
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestConfirmFallsThroughToExport(t *testing.T) {
	dir := t.TempDir()
	primary := &fakeTransport{name: "endpoint", err: errors.New("connection refused")}
	widget := &fakeTransport{name: "widget", err: errors.New("not configured")}
	export := &checkout.ExportTransport{Dir: dir}
	p := checkout.NewPipeline([]checkout.Transport{primary, widget, export}, time.Second, nil, nil)

	_, err := p.Begin(validFields(), cartEntries(), pricing.Delivery)
	require.NoError(t, err)

	out, err := p.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, checkout.StateExportedLocally, out.State)
	assert.Equal(t, dir, filepath.Dir(out.ExportPath))
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, widget.calls)

	data, err := os.ReadFile(out.ExportPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		"Order Date,Customer Name,Email,Phone,Item Description,Quantity,Price,Total",
		strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "Jane Doe")
	assert.Contains(t, lines[1], "Ribeye Steak")
	assert.Contains(t, lines[1], "32.50")
	assert.Contains(t, lines[1], "65.00")
	assert.Contains(t, lines[2], "Filet Mignon")
	assert.Contains(t, lines[2], "28.00")
}

func TestConfirmAllTransportsFail(t *testing.T) {
	resets := 0
	primary := &fakeTransport{name: "endpoint", err: errors.New("connection refused")}
	export := &fakeTransport{name: "local export", err: errors.New("disk full")}
	p := checkout.NewPipeline([]checkout.Transport{primary, export}, time.Second, nil,
		func() { resets++ })

	_, err := p.Begin(validFields(), cartEntries(), pricing.Delivery)
	require.NoError(t, err)

	_, err = p.Confirm(context.Background())
	assert.ErrorIs(t, err, checkout.ErrAllTransportsFailed)
	assert.Equal(t, checkout.StateIdle, p.State())
	assert.Equal(t, 1, resets)
}

func TestJournalRecordsOutcomes(t *testing.T) {
	journal, err := checkout.OpenJournal(filepath.Join(t.TempDir(), "orders.journal"))
	require.NoError(t, err)
	defer journal.Close()

	primary := &fakeTransport{name: "endpoint"}
	p := checkout.NewPipeline([]checkout.Transport{primary}, time.Second, journal, nil)

	_, err = p.Begin(validFields(), cartEntries(), pricing.Shipping)
	require.NoError(t, err)
	_, err = p.Confirm(context.Background())
	require.NoError(t, err)

	entries, err := journal.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Jane Doe", entries[0].Customer)
	assert.Equal(t, "shipping", entries[0].Method)
	assert.Equal(t, 2, entries[0].Items)
	assert.Equal(t, "succeeded", entries[0].State)
	assert.Equal(t, "endpoint", entries[0].Transport)
}

func TestBuildSubmission(t *testing.T) {
	sub := checkout.Build(validFields(), cartEntries(), pricing.Delivery)
	assert.Equal(t, "Jane Doe", sub.CustomerName)
	assert.Equal(t, "delivery", sub.DeliveryMethod)
	require.Len(t, sub.Items, 2)
	assert.Equal(t, "1001", sub.Items[0].ItemNumber)
	assert.InDelta(t, 32.50, sub.Items[0].Price, 0.001)
	assert.InDelta(t, 93.00, sub.Subtotal(), 0.001)
}

func TestBuildSubmissionItemNumberFallback(t *testing.T) {
	entries := []cart.Entry{
		{Quantity: 1, Product: catalog.Product{ItemDesc: "Ribeye Steak", Retail: "32.50"}},
	}
	sub := checkout.Build(validFields(), entries, pricing.Shipping)
	assert.Equal(t, "N/A", sub.Items[0].ItemNumber)
}

func TestExportRows(t *testing.T) {
	sub := checkout.Build(validFields(), cartEntries(), pricing.Delivery)
	at := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	rows := checkout.ExportRows(sub, at)
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-03-14T10:30:00Z", rows[0].OrderDate)
	assert.Equal(t, "Jane Doe", rows[0].CustomerName)
	assert.Equal(t, 2, rows[0].Quantity)
	assert.Equal(t, "32.50", rows[0].Price)
	assert.Equal(t, "65.00", rows[0].Total)
}
