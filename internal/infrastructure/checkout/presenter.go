package checkout

import (
	"context"
	"sync"

	"dealdrop/internal/domain/entity"
)

// CallbackPresenter hands the dialog over to the storefront: Present parks the
// unlock attempt until the browser reports the dialog outcome through the
// HTTP callback (Deliver). One session per order id; the first delivered
// outcome wins, later ones are rejected.
type CallbackPresenter struct {
	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	options Options
	outcome chan entity.PaymentOutcome
}

func NewCallbackPresenter() *CallbackPresenter {
	return &CallbackPresenter{
		sessions: make(map[string]*session),
	}
}

// Present blocks until the outcome callback arrives or the context is
// cancelled. Cancellation counts as a user dismissal.
func (p *CallbackPresenter) Present(ctx context.Context, options Options) entity.PaymentOutcome {
	s := &session{
		options: options,
		outcome: make(chan entity.PaymentOutcome, 1),
	}

	p.mu.Lock()
	p.sessions[options.OrderID] = s
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.sessions, options.OrderID)
		p.mu.Unlock()
	}()

	select {
	case outcome := <-s.outcome:
		return outcome
	case <-ctx.Done():
		return entity.FailureOutcome(ReasonCancelled)
	}
}

// Session returns the dialog options of a pending unlock attempt so the
// storefront can open the checkout dialog with them.
func (p *CallbackPresenter) Session(orderID string) (Options, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sessions[orderID]
	if !ok {
		return Options{}, false
	}

	return s.options, true
}

// Deliver reports the dialog outcome for a pending session. It returns false
// when no such session is waiting (unknown order id, or an outcome was
// already delivered).
func (p *CallbackPresenter) Deliver(orderID string, outcome entity.PaymentOutcome) bool {
	p.mu.Lock()
	s, ok := p.sessions[orderID]
	if ok {
		delete(p.sessions, orderID)
	}
	p.mu.Unlock()

	if !ok {
		return false
	}

	s.outcome <- outcome

	return true
}
