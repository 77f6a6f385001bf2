package notifier

import (
	"context"
	"log/slog"

	"dealdrop/internal/domain/service/unlock"
	"dealdrop/pkg/logx"
)

// LogNotifier surfaces unlock notifications through structured logs. The
// storefront reads the message from the unlock response body; this keeps a
// server-side trace of what the user was told.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, notification unlock.Notification) {
	level := slog.LevelInfo
	if notification.Level == unlock.NotificationError {
		level = slog.LevelWarn
	}

	logger(ctx).Log(ctx, level, "unlock notification",
		slog.String(logx.FieldDealID, notification.DealID),
		slog.String("level", string(notification.Level)),
		slog.String("message", notification.Message),
	)
}
