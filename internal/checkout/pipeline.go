package checkout

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/primecut/storefront/internal/cart"
	"github.com/primecut/storefront/internal/pricing"
	"github.com/primecut/storefront/internal/validate"
)

// State of the submission pipeline. Transitions:
//
//	Idle -> Confirming            Begin (validators pass)
//	Confirming -> Idle            Cancel (no side effects)
//	Confirming -> Submitting      Confirm
//	Submitting -> Succeeded       endpoint send left the machine
//	Submitting -> FallbackSubmitting  endpoint could not send
//	FallbackSubmitting -> Succeeded   widget accepted the order
//	FallbackSubmitting -> ExportedLocally  CSV written for manual delivery
type State int

const (
	StateIdle State = iota
	StateConfirming
	StateSubmitting
	StateFallbackSubmitting
	StateSucceeded
	StateExportedLocally
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfirming:
		return "confirming"
	case StateSubmitting:
		return "submitting"
	case StateFallbackSubmitting:
		return "fallback-submitting"
	case StateSucceeded:
		return "succeeded"
	case StateExportedLocally:
		return "exported-locally"
	}
	return "unknown"
}

var (
	// ErrNotConfirming is returned when Confirm or Cancel is called
	// outside the confirmation step.
	ErrNotConfirming = errors.New("no order awaiting confirmation")
	// ErrInvalidForm aborts Begin back to idle.
	ErrInvalidForm = errors.New("please fill in all required fields correctly")
	// ErrNoMethod aborts Begin when no fulfillment method is selected.
	ErrNoMethod = errors.New("please select delivery or shipping method")
	// ErrAllTransportsFailed means even the local export could not run;
	// the customer is told to contact the business directly.
	ErrAllTransportsFailed = errors.New("order could not be submitted or saved; please contact the business directly")
)

// Outcome describes how a submission terminated.
type Outcome struct {
	State      State
	Transport  string
	ExportPath string
}

// Pipeline walks one order through confirmation and the transport
// chain. A single pipeline serves the whole session; it returns to idle
// after every terminal outcome.
type Pipeline struct {
	transports []Transport
	timeout    time.Duration
	journal    *Journal
	onReset    func()

	state   State
	sub     Submission
	summary string
}

// NewPipeline wires the transport chain in fallback order. timeout
// bounds each individual attempt; the source imposed none, which left
// "still pending" indistinguishable from "failed". onReset runs after
// every terminal outcome to clear the form, and may be nil.
func NewPipeline(transports []Transport, timeout time.Duration, journal *Journal, onReset func()) *Pipeline {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Pipeline{
		transports: transports,
		timeout:    timeout,
		journal:    journal,
		onReset:    onReset,
		state:      StateIdle,
	}
}

func (p *Pipeline) State() State { return p.state }

// Summary returns the confirmation view rendered by the last Begin.
func (p *Pipeline) Summary() string { return p.summary }

// Begin validates the form and, if it passes, builds the submission
// and renders the confirmation summary. A validation failure returns
// the pipeline to idle with a user-visible message.
func (p *Pipeline) Begin(fields validate.Fields, entries []cart.Entry, method pricing.Fulfillment) (string, error) {
	p.state = StateIdle
	if method != pricing.Delivery && method != pricing.Shipping {
		return "", ErrNoMethod
	}
	if !fields.Valid() || len(entries) == 0 {
		return "", ErrInvalidForm
	}
	p.sub = Build(fields, entries, method)
	p.summary = RenderSummary(fields, entries, method)
	p.state = StateConfirming
	return p.summary, nil
}

// Cancel dismisses the confirmation view without side effects.
func (p *Pipeline) Cancel() error {
	if p.state != StateConfirming {
		return ErrNotConfirming
	}
	p.state = StateIdle
	p.sub = Submission{}
	p.summary = ""
	return nil
}

// Confirm submits the confirmed order through the transport chain.
// Transports run strictly one after another, each tried at most once,
// each bounded by the per-attempt timeout.
func (p *Pipeline) Confirm(ctx context.Context) (Outcome, error) {
	if p.state != StateConfirming {
		return Outcome{}, ErrNotConfirming
	}
	sub := p.sub
	p.state = StateSubmitting

	var lastErr error
	for i, t := range p.transports {
		if i > 0 {
			p.state = StateFallbackSubmitting
		}
		attemptCtx, cancel := context.WithTimeout(ctx, p.timeout)
		err := t.Send(attemptCtx, sub)
		cancel()
		if err != nil {
			lastErr = err
			zap.L().Warn("order transport failed, falling back",
				zap.String("transport", t.Name()), zap.Error(err))
			continue
		}
		out := Outcome{State: StateSucceeded, Transport: t.Name()}
		if ex, ok := t.(interface{ LastPath() string }); ok {
			out.State = StateExportedLocally
			out.ExportPath = ex.LastPath()
		}
		p.finish(sub, out, nil)
		return out, nil
	}

	out := Outcome{State: StateIdle}
	p.finish(sub, out, lastErr)
	return out, ErrAllTransportsFailed
}

// finish records the outcome, resets the form and returns the pipeline
// to idle so the next order starts from a clean slate.
func (p *Pipeline) finish(sub Submission, out Outcome, sendErr error) {
	if p.journal != nil {
		if err := p.journal.Record(sub, out, sendErr); err != nil {
			zap.L().Warn("journal write failed", zap.Error(err))
		}
	}
	if p.onReset != nil {
		p.onReset()
	}
	p.state = StateIdle
	p.sub = Submission{}
	p.summary = ""
}
