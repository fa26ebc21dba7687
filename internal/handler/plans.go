package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/invoicedesk/internal/config"
	tg "github.com/set-night/invoicedesk/internal/telegram"
)

func (h *Handler) handlePlans(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	chatID := update.Message.Chat.ID

	refs, err := h.plans.ListByChat(ctx, chatID, config.PlansPageSize)
	if err != nil {
		slog.Error("list plans", "chat_id", chatID, "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Could not load your plans. Please try again.",
		})
		return
	}

	if len(refs) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "🗂 No plans yet. Messages sent in plan mode will show up here.",
		})
		return
	}

	var sb strings.Builder
	sb.WriteString("🗂 *Recent plans:*\n\n")
	for _, ref := range refs {
		fmt.Fprintf(&sb, "• `%s` — %s (%s)\n",
			ref.PlanID, truncate(ref.Message, 80), ref.CreatedAt.Format("Jan 2 15:04"))
	}

	tg.SendLongMessage(ctx, b, chatID, sb.String(), nil)
}
