package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/invoicedesk/internal/middleware"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	text := fmt.Sprintf(
		"👋 Hi %s!\n\n"+
			"Send me an invoice or a reimbursement request and I will pass it to the "+
			"finance assistant.\n\n"+
			"📎 Attach images or PDF files (up to %d per request), then send a text "+
			"message to submit everything together.\n\n"+
			"Commands:\n"+
			"/files — review pending attachments\n"+
			"/team — set or show your team\n"+
			"/history — recent exchanges\n"+
			"/plans — recent submitted plans\n"+
			"/reset — drop attachments and history",
		user.FirstName, h.attachments.Limit(),
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
}
