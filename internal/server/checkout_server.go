package server

import (
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"dealdrop/internal/domain/entity"
	"dealdrop/internal/infrastructure/checkout"
	"dealdrop/pkg/errcodes"
	"dealdrop/pkg/httpx/reply"
	"dealdrop/pkg/httpx/req"
	"dealdrop/pkg/rest"
)

type checkoutSessions interface {
	Session(orderID string) (checkout.Options, bool)
	Deliver(orderID string, outcome entity.PaymentOutcome) bool
}

// CheckoutServer is the storefront side of a pending unlock: it serves the
// dialog options for an order and accepts the dialog outcome back.
type CheckoutServer struct {
	sessions  checkoutSessions
	scriptURL string
}

func NewCheckoutServer(sessions checkoutSessions, scriptURL string) CheckoutServer {
	return CheckoutServer{
		sessions:  sessions,
		scriptURL: scriptURL,
	}
}

func (s CheckoutServer) getV1CheckoutSession(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	orderID := r.PathValue("orderId")

	options, ok := s.sessions.Session(orderID)
	if !ok {
		return failure.NewNotFoundError(
			fmt.Sprintf("no pending checkout session for order %s", orderID),
			failure.WithCode(errcodes.NotFound),
		)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.CheckoutSession{
		OrderID:        options.OrderID,
		Amount:         options.Amount,
		Currency:       options.Currency,
		Name:           options.Name,
		Description:    options.Description,
		ThemeColor:     options.ThemeColor,
		ScriptURL:      s.scriptURL,
		PrefillName:    options.Prefill.Name,
		PrefillEmail:   options.Prefill.Email,
		PrefillContact: options.Prefill.Contact,
	})

	return nil
}

func (s CheckoutServer) postV1CheckoutOutcome(w http.ResponseWriter, r *http.Request) error {
	orderID := r.PathValue("orderId")

	var request rest.CheckoutOutcome
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	var outcome entity.PaymentOutcome
	if request.Success {
		outcome = entity.SuccessOutcome(entity.PaymentPayload{
			PaymentID: request.PaymentID,
			OrderID:   orderID,
			Signature: request.Signature,
		})
	} else {
		outcome = entity.FailureOutcome(request.Reason)
	}

	if !s.sessions.Deliver(orderID, outcome) {
		return failure.NewNotFoundError(
			fmt.Sprintf("no pending checkout session for order %s", orderID),
			failure.WithCode(errcodes.NotFound),
		)
	}

	reply.OK(w)

	return nil
}
