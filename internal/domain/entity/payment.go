package entity

import (
	"strings"

	"github.com/rs/xid"
)

const (
	// UnlockAmount is the fixed per-click unlock fee in paise (₹0.89).
	UnlockAmount int64 = 89

	UnlockCurrency = "INR"

	// FallbackOrderIDPrefix marks orders synthesized locally when the payment
	// backend is unreachable. Such orders are never proof of payment.
	FallbackOrderIDPrefix = "order_local_"
)

// PaymentOrder is a payment intent created for a single unlock attempt.
type PaymentOrder struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	DealID   string `json:"dealId"`
}

func (o PaymentOrder) IsFallback() bool {
	return strings.HasPrefix(o.OrderID, FallbackOrderIDPrefix)
}

// NewFallbackOrder synthesizes a local order so the unlock flow stays usable
// when the backend cannot be reached.
func NewFallbackOrder(dealID string) PaymentOrder {
	return PaymentOrder{
		OrderID:  FallbackOrderIDPrefix + xid.New().String(),
		Amount:   UnlockAmount,
		Currency: UnlockCurrency,
		DealID:   dealID,
	}
}

// PaymentPayload is the raw success payload reported by the checkout widget.
// It is opaque to the widget; only the backend verification may trust it.
type PaymentPayload struct {
	PaymentID string `json:"razorpay_payment_id"`
	OrderID   string `json:"razorpay_order_id"`
	Signature string `json:"razorpay_signature"`
}

// PaymentOutcome is the single result of one checkout dialog invocation:
// either a success payload or a failure reason.
type PaymentOutcome struct {
	Payload *PaymentPayload
	Reason  string
}

func SuccessOutcome(payload PaymentPayload) PaymentOutcome {
	return PaymentOutcome{Payload: &payload}
}

func FailureOutcome(reason string) PaymentOutcome {
	return PaymentOutcome{Reason: reason}
}

func (o PaymentOutcome) Success() bool {
	return o.Payload != nil
}

// PaymentPrefill carries optional contact fields for the checkout dialog.
type PaymentPrefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}
