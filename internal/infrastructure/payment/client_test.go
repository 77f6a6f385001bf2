package payment_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"dealdrop/internal/domain/entity"
	"dealdrop/internal/infrastructure/payment"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func TestCreateOrder(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	t.Run("Backend order", func(t *testing.T) {
		var gotBody map[string]any

		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rq.Equal(http.MethodPost, r.Method)
			rq.Equal("/create_order", r.URL.Path)

			b, err := io.ReadAll(r.Body)
			rq.NoError(err)
			rq.NoError(json.Unmarshal(b, &gotBody))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"orderId":"order_9A33XWu170gUtm","amount":89,"currency":"INR","dealId":"deal-1"}`))
		}))
		defer backend.Close()

		client := payment.NewClient(backend.URL, nil)

		order := client.CreateOrder(ctx, "deal-1")

		rq.Equal("order_9A33XWu170gUtm", order.OrderID)
		rq.Equal(entity.UnlockAmount, order.Amount)
		rq.Equal(entity.UnlockCurrency, order.Currency)
		rq.Equal("deal-1", order.DealID)
		rq.False(order.IsFallback())

		rq.Equal(float64(89), gotBody["amount"])
		rq.Equal("INR", gotBody["currency"])
		rq.Equal("deal-1", gotBody["deal_id"])
	})

	t.Run("Fallback on backend error", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer backend.Close()

		client := payment.NewClient(backend.URL, nil)

		order := client.CreateOrder(ctx, "deal-2")

		rq.True(order.IsFallback())
		rq.Equal(entity.UnlockAmount, order.Amount)
		rq.Equal(entity.UnlockCurrency, order.Currency)
		rq.Equal("deal-2", order.DealID)
	})

	t.Run("Fallback on unreachable backend", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		backend.Close()

		client := payment.NewClient(backend.URL, nil)

		order := client.CreateOrder(ctx, "deal-3")

		rq.True(order.IsFallback())
		rq.Equal(entity.UnlockAmount, order.Amount)
		rq.Equal("deal-3", order.DealID)
	})
}

func TestVerifyPayment(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	payload := entity.PaymentPayload{
		PaymentID: "pay_29QQoUBi66xm2f",
		OrderID:   "order_9A33XWu170gUtm",
		Signature: "signature",
	}

	t.Run("Verified", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rq.Equal("/verify_payment", r.URL.Path)

			b, err := io.ReadAll(r.Body)
			rq.NoError(err)

			var got entity.PaymentPayload
			rq.NoError(json.Unmarshal(b, &got))
			rq.Equal(payload, got)

			w.WriteHeader(http.StatusOK)
		}))
		defer backend.Close()

		rq.True(payment.NewClient(backend.URL, nil).VerifyPayment(ctx, payload))
	})

	t.Run("Not verified on rejection", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer backend.Close()

		rq.False(payment.NewClient(backend.URL, nil).VerifyPayment(ctx, payload))
	})

	t.Run("Not verified on unreachable backend", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		backend.Close()

		rq.False(payment.NewClient(backend.URL, nil).VerifyPayment(ctx, payload))
	})
}
