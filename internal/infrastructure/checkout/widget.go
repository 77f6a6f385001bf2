package checkout

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"dealdrop/internal/domain/entity"
	"dealdrop/pkg/logx"
)

const (
	ReasonScriptLoadFailed = "failed to load checkout script"
	ReasonCancelled        = "payment cancelled by user"

	dialogName        = "Deal Aggregator"
	dialogDescription = "Unlock affiliate link for ₹0.89"
	dialogThemeColor  = "#8B5CF6"
)

// Options configures one checkout dialog invocation.
type Options struct {
	Key         string                `json:"key"`
	Amount      int64                 `json:"amount"`
	Currency    string                `json:"currency"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	OrderID     string                `json:"order_id"`
	Prefill     entity.PaymentPrefill `json:"prefill"`
	ThemeColor  string                `json:"theme_color"`
}

// Presenter presents the payment dialog built from the options and reports
// exactly one outcome: the success payload, or a failure reason (a dismissal
// by the user included).
type Presenter interface {
	Present(ctx context.Context, options Options) entity.PaymentOutcome
}

// Widget bridges unlock attempts to the third-party checkout. The checkout
// script is loaded lazily, at most once per process; concurrent attempts
// share a single in-flight load.
type Widget struct {
	key       string
	loader    ScriptLoader
	presenter Presenter

	group  singleflight.Group
	loaded atomic.Bool
}

func NewWidget(key string, loader ScriptLoader, presenter Presenter) *Widget {
	return &Widget{
		key:       key,
		loader:    loader,
		presenter: presenter,
	}
}

// Process runs one payment dialog for the order. The outcome is never an
// error: script trouble and user dismissal both surface as failure outcomes.
func (w *Widget) Process(
	ctx context.Context,
	order entity.PaymentOrder,
	prefill entity.PaymentPrefill,
) entity.PaymentOutcome {
	if err := w.ensureLoaded(ctx); err != nil {
		logger(ctx).Error(
			"checkout script load failed",
			slog.String(logx.FieldOrderID, order.OrderID),
			logx.Error(err),
		)

		return entity.FailureOutcome(ReasonScriptLoadFailed)
	}

	outcome := w.presenter.Present(ctx, Options{
		Key:         w.key,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Name:        dialogName,
		Description: dialogDescription,
		OrderID:     order.OrderID,
		Prefill:     prefill,
		ThemeColor:  dialogThemeColor,
	})

	if !outcome.Success() && outcome.Reason == "" {
		outcome.Reason = ReasonCancelled
	}

	return outcome
}

func (w *Widget) ensureLoaded(ctx context.Context) error {
	if w.loaded.Load() {
		return nil
	}

	_, err, _ := w.group.Do("checkout-script", func() (any, error) {
		if err := w.loader.Load(ctx); err != nil {
			return nil, err
		}

		w.loaded.Store(true)

		return nil, nil
	})

	return err
}
