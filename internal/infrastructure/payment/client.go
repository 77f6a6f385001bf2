package payment

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"dealdrop/internal/domain/entity"
	"dealdrop/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Client talks to the payment backend that creates and verifies unlock orders.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	DealID   string `json:"deal_id"`
}

// CreateOrder requests a payment order for a deal. It never fails: any backend
// or transport error degrades to a local fallback order, which downstream code
// can tell apart from a real one and which verification will never accept.
func (c *Client) CreateOrder(ctx context.Context, dealID string) entity.PaymentOrder {
	order, err := c.createOrder(ctx, dealID)
	if err != nil {
		logger(ctx).Warn(
			"order creation failed, using local fallback order",
			slog.String(logx.FieldDealID, dealID),
			logx.Error(err),
		)

		return entity.NewFallbackOrder(dealID)
	}

	return order
}

func (c *Client) createOrder(ctx context.Context, dealID string) (entity.PaymentOrder, error) {
	request := createOrderRequest{
		Amount:   entity.UnlockAmount,
		Currency: entity.UnlockCurrency,
		DealID:   dealID,
	}

	var order entity.PaymentOrder

	if err := c.post(ctx, "/create_order", request, &order); err != nil {
		return entity.PaymentOrder{}, err
	}

	return order, nil
}

// VerifyPayment reports whether the backend confirms the charge behind the
// payload actually cleared. Any transport error or non-2xx response means
// "not verified"; the caller never sees the cause.
func (c *Client) VerifyPayment(ctx context.Context, payload entity.PaymentPayload) bool {
	if err := c.post(ctx, "/verify_payment", payload, nil); err != nil {
		logger(ctx).Warn(
			"payment verification failed",
			slog.String(logx.FieldOrderID, payload.OrderID),
			logx.Error(err),
		)

		return false
	}

	return true
}

func (c *Client) post(ctx context.Context, endpoint string, request, dest any) error {
	b, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s: unexpected status %d", endpoint, resp.StatusCode)
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return fmt.Errorf("json.Decode: %w", err)
		}
	}

	return nil
}
