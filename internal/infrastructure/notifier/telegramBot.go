package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"dealdrop/internal/domain/entity"
	"dealdrop/pkg/logx"
)

// TelegramBot pushes hot deal alerts to a channel subscribers follow for
// price drops.
type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// Run drains the hot deal channel until the context is cancelled or the
// channel is closed.
func (b *TelegramBot) Run(ctx context.Context, deals <-chan entity.Deal) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case deal, ok := <-deals:
			if !ok {
				return nil
			}
			if err := b.SendDeal(ctx, deal); err != nil {
				logger(ctx).Error("failed to send deal alert", logx.Error(err))
			}
		}
	}
}

func (b *TelegramBot) SendDeal(ctx context.Context, deal entity.Deal) error {
	text := fmt.Sprintf(
		"🔥 <b>HOT DEAL!</b>\n\n"+
			"🛍 <b>%s</b>\n"+
			"💰 <b>Price:</b> ₹%d\n"+
			"📉 <b>Discount:</b> %d%%\n"+
			"🏬 <b>Platform:</b> %s\n\n"+
			"🔗 <a href=\"%s\">View Deal</a>",
		deal.Title,
		deal.Price,
		deal.DiscountPercent(),
		deal.Platform,
		deal.ProductURL,
	)

	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	_, err := b.bot.SendMessage(ctx, msg)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText sends a plain text message to the alert channel.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	_, err := b.bot.SendMessage(ctx, msg)
	return err
}
