package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"dealdrop/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	TaskTypeRecordClick = "click:record"
	QueueClicks         = "clicks"

	clickCounterKeyPrefix = "dealdrop:clicks:"
)

type clickPayload struct {
	DealID    string    `json:"deal_id"`
	OrderID   string    `json:"order_id"`
	PaymentID string    `json:"payment_id"`
	ClickedAt time.Time `json:"clicked_at"`
}

// ClickQueue enqueues unlock click events for asynchronous processing, so the
// unlock flow never waits on storage.
type ClickQueue struct {
	client *asynq.Client
}

func NewClickQueue(client *asynq.Client) *ClickQueue {
	return &ClickQueue{client: client}
}

func (q *ClickQueue) RecordUnlock(ctx context.Context, dealID, orderID, paymentID string) error {
	payload, err := json.Marshal(clickPayload{
		DealID:    dealID,
		OrderID:   orderID,
		PaymentID: paymentID,
		ClickedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	task := asynq.NewTask(TaskTypeRecordClick, payload, asynq.MaxRetry(5), asynq.Queue(QueueClicks))

	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	return nil
}

type ClickStore interface {
	RecordClick(ctx context.Context, dealID string, clickedAt time.Time) error
}

// ClickHandler consumes click tasks: it persists the event and bumps the
// per-deal counter in redis for cheap popularity reads.
type ClickHandler struct {
	store ClickStore
	redis *redis.Client
}

func NewClickHandler(store ClickStore, redisClient *redis.Client) *ClickHandler {
	return &ClickHandler{
		store: store,
		redis: redisClient,
	}
}

func (h *ClickHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload clickPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	if err := h.store.RecordClick(ctx, payload.DealID, payload.ClickedAt); err != nil {
		return fmt.Errorf("store.RecordClick: %w", err)
	}

	if h.redis != nil {
		if err := h.redis.Incr(ctx, clickCounterKeyPrefix+payload.DealID).Err(); err != nil {
			logger(ctx).Warn("failed to bump click counter",
				slog.String(logx.FieldDealID, payload.DealID), logx.Error(err))
		}
	}

	logger(ctx).Info("unlock click recorded",
		slog.String(logx.FieldDealID, payload.DealID),
		slog.String(logx.FieldOrderID, payload.OrderID))

	return nil
}
