// Command ordertool is the phone-order desk client: it loads the
// catalog, builds a cart, validates the customer fields, shows the
// confirmation summary and submits through the transport fallback
// chain (order endpoint, email widget, local CSV export).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/primecut/storefront/config"
	"github.com/primecut/storefront/internal/cart"
	"github.com/primecut/storefront/internal/catalog"
	"github.com/primecut/storefront/internal/checkout"
	"github.com/primecut/storefront/internal/pricing"
	"github.com/primecut/storefront/internal/validate"
)

var (
	configFile = flag.String("c", "storefront.yml", "configuration file")
	firstName  = flag.String("first", "", "customer first name")
	lastName   = flag.String("last", "", "customer last name")
	email      = flag.String("email", "", "customer email")
	phone      = flag.String("phone", "", "customer phone")
	method     = flag.String("method", "", "fulfillment method: delivery or shipping")
	items      = flag.String("items", "", "line items as itemNumber:qty pairs, e.g. 1001:2,1002:1")
	assumeYes  = flag.Bool("yes", false, "submit without the confirmation prompt")
)

func main() {
	flag.Parse()

	logger, err := zap.NewDevelopmentConfig().Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	zap.ReplaceGlobals(logger)

	if err := run(config.LoadConfig(*configFile)); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Checkout.Timeout)
	products, err := catalog.NewLoader(cfg.Checkout.CatalogURL).Load(ctx)
	cancel()
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}
	fmt.Printf("Loaded %d products from %s\n", len(products), cfg.Checkout.CatalogURL)

	fields := validate.Fields{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Phone:     *phone,
	}
	fulfillment := pricing.Fulfillment(*method)

	bus := EventBus.New()
	basket := cart.New(cart.PolicyByName(cfg.Checkout.QuantityPolicy), bus)
	basket.Load(products)

	// Recompute totals and the submit gate on every cart change, the
	// same reactive loop the page runs.
	submitEnabled := false
	if err := bus.Subscribe(cart.TopicChanged, func() {
		totals := pricing.Compute(basket.Entries(), fulfillment)
		submitEnabled = validate.Form(fields, basket.Size(), fulfillment)
		fmt.Printf("Subtotal: %s  Fee: %s  Total: %s\n",
			pricing.FormatAmount(totals.Subtotal), totals.DisplayFee(), totals.DisplayTotal())
	}); err != nil {
		return err
	}

	if err := fillCart(basket, products, *items); err != nil {
		return err
	}

	if !submitEnabled {
		if bad := fields.Check(); len(bad) > 0 {
			for _, f := range bad {
				fmt.Println("  -", f.Message)
			}
		}
		if basket.IsEmpty() {
			fmt.Println("  - cart is empty")
		}
		return errors.New("order form is not valid")
	}

	journal, err := checkout.OpenJournal(cfg.Checkout.JournalFile)
	if err != nil {
		return err
	}
	defer journal.Close()

	pipeline := checkout.NewPipeline(
		[]checkout.Transport{
			&checkout.EndpointTransport{URL: cfg.Checkout.OrdersURL},
			&checkout.WidgetTransport{
				Endpoint:   cfg.Widget.Endpoint,
				ServiceID:  cfg.Widget.ServiceID,
				TemplateID: cfg.Widget.TemplateID,
				PublicKey:  cfg.Widget.PublicKey,
			},
			&checkout.ExportTransport{Dir: cfg.Checkout.ExportDir},
		},
		cfg.Checkout.Timeout,
		journal,
		basket.Reset,
	)

	summary, err := pipeline.Begin(fields, basket.Entries(), fulfillment)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(summary)

	if !*assumeYes && !confirmPrompt() {
		_ = pipeline.Cancel()
		fmt.Println("Order cancelled.")
		return nil
	}

	outcome, err := pipeline.Confirm(context.Background())
	if err != nil {
		return err
	}
	switch outcome.State {
	case checkout.StateExportedLocally:
		fmt.Printf("Order saved locally at %s. Please send the file to the administrator.\n", outcome.ExportPath)
	default:
		fmt.Println("Order submitted successfully! A confirmation email will follow shortly.")
	}
	return nil
}

// fillCart parses itemNumber:qty pairs and sets quantities by catalog
// position.
func fillCart(basket *cart.Cart, products []catalog.Product, spec string) error {
	byNumber := make(map[string]int, len(products))
	for i, p := range products {
		byNumber[p.ItemNumber] = i
	}
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		num, qty, found := strings.Cut(pair, ":")
		if !found {
			return errors.Errorf("bad item spec %q, want itemNumber:qty", pair)
		}
		index, okNum := byNumber[strings.TrimSpace(num)]
		if !okNum {
			return errors.Errorf("unknown item number %q", num)
		}
		corrected := basket.SetQuantity(index, strings.TrimSpace(qty))
		fmt.Printf("%s x%d\n", products[index].ItemDesc, corrected)
	}
	return nil
}

func confirmPrompt() bool {
	fmt.Print("Submit this order? [y/N]: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
