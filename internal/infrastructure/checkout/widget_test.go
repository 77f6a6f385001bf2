package checkout_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dealdrop/internal/domain/entity"
	"dealdrop/internal/infrastructure/checkout"
)

type fakeLoader struct {
	calls atomic.Int64
	err   error
	block chan struct{}
}

func (l *fakeLoader) Load(context.Context) error {
	l.calls.Add(1)

	if l.block != nil {
		<-l.block
	}

	return l.err
}

type fakePresenter struct {
	mu      sync.Mutex
	options []checkout.Options
	outcome entity.PaymentOutcome
}

func (p *fakePresenter) Present(_ context.Context, options checkout.Options) entity.PaymentOutcome {
	p.mu.Lock()
	p.options = append(p.options, options)
	p.mu.Unlock()

	return p.outcome
}

func testOrder() entity.PaymentOrder {
	return entity.PaymentOrder{
		OrderID:  "order_9A33XWu170gUtm",
		Amount:   entity.UnlockAmount,
		Currency: entity.UnlockCurrency,
		DealID:   "deal-1",
	}
}

func TestWidgetProcess(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	t.Run("Script load failure", func(t *testing.T) {
		presenter := &fakePresenter{}
		widget := checkout.NewWidget(
			"rzp_test_key",
			&fakeLoader{err: errors.New("boom")},
			presenter,
		)

		outcome := widget.Process(ctx, testOrder(), entity.PaymentPrefill{})

		rq.False(outcome.Success())
		rq.Equal(checkout.ReasonScriptLoadFailed, outcome.Reason)
		rq.Empty(presenter.options, "dialog must not open without the script")
	})

	t.Run("Options built from order", func(t *testing.T) {
		presenter := &fakePresenter{
			outcome: entity.SuccessOutcome(entity.PaymentPayload{
				PaymentID: "pay_29QQoUBi66xm2f",
				OrderID:   "order_9A33XWu170gUtm",
				Signature: "signature",
			}),
		}
		widget := checkout.NewWidget("rzp_test_key", &fakeLoader{}, presenter)

		prefill := entity.PaymentPrefill{Email: "john@doe.com"}
		outcome := widget.Process(ctx, testOrder(), prefill)

		rq.True(outcome.Success())
		rq.Len(presenter.options, 1)

		options := presenter.options[0]
		rq.Equal("rzp_test_key", options.Key)
		rq.Equal(entity.UnlockAmount, options.Amount)
		rq.Equal(entity.UnlockCurrency, options.Currency)
		rq.Equal("order_9A33XWu170gUtm", options.OrderID)
		rq.Equal("Deal Aggregator", options.Name)
		rq.Equal("Unlock affiliate link for ₹0.89", options.Description)
		rq.Equal("#8B5CF6", options.ThemeColor)
		rq.Equal(prefill, options.Prefill)
	})

	t.Run("Failure without reason normalized to dismissal", func(t *testing.T) {
		presenter := &fakePresenter{outcome: entity.PaymentOutcome{}}
		widget := checkout.NewWidget("rzp_test_key", &fakeLoader{}, presenter)

		outcome := widget.Process(ctx, testOrder(), entity.PaymentPrefill{})

		rq.False(outcome.Success())
		rq.Equal(checkout.ReasonCancelled, outcome.Reason)
	})

	t.Run("Script loaded once across attempts", func(t *testing.T) {
		loader := &fakeLoader{block: make(chan struct{})}
		presenter := &fakePresenter{outcome: entity.FailureOutcome("declined")}
		widget := checkout.NewWidget("rzp_test_key", loader, presenter)

		var wg sync.WaitGroup

		for range 5 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				widget.Process(ctx, testOrder(), entity.PaymentPrefill{})
			}()
		}

		time.Sleep(100 * time.Millisecond)
		close(loader.block)
		wg.Wait()

		rq.Equal(int64(1), loader.calls.Load(), "concurrent attempts must share one load")

		widget.Process(ctx, testOrder(), entity.PaymentPrefill{})
		rq.Equal(int64(1), loader.calls.Load(), "a successful load must be cached")
	})
}

func TestCallbackPresenter(t *testing.T) {
	rq := require.New(t)

	options := checkout.Options{OrderID: "order_9A33XWu170gUtm", Amount: entity.UnlockAmount}

	t.Run("Outcome delivered to waiting attempt", func(t *testing.T) {
		presenter := checkout.NewCallbackPresenter()

		done := make(chan entity.PaymentOutcome, 1)

		go func() {
			done <- presenter.Present(context.Background(), options)
		}()

		// Wait for the session to become visible to the storefront.
		rq.Eventually(func() bool {
			_, ok := presenter.Session(options.OrderID)
			return ok
		}, time.Second, 10*time.Millisecond)

		payload := entity.PaymentPayload{PaymentID: "pay_1", OrderID: options.OrderID}
		rq.True(presenter.Deliver(options.OrderID, entity.SuccessOutcome(payload)))

		outcome := <-done
		rq.True(outcome.Success())
		rq.Equal(payload, *outcome.Payload)

		rq.False(presenter.Deliver(options.OrderID, entity.FailureOutcome("late")), "single outcome per invocation")
	})

	t.Run("Cancelled context is a dismissal", func(t *testing.T) {
		presenter := checkout.NewCallbackPresenter()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		outcome := presenter.Present(ctx, options)

		rq.False(outcome.Success())
		rq.Equal(checkout.ReasonCancelled, outcome.Reason)
	})

	t.Run("Unknown session rejected", func(t *testing.T) {
		presenter := checkout.NewCallbackPresenter()

		rq.False(presenter.Deliver("order_unknown", entity.FailureOutcome("nope")))
	})
}
