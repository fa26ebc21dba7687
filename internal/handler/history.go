package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/invoicedesk/internal/config"
	"github.com/set-night/invoicedesk/internal/render"
	tg "github.com/set-night/invoicedesk/internal/telegram"
)

func (h *Handler) handleHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	chatID := update.Message.Chat.ID

	log := h.history.List(chatID)
	if len(log) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "📜 No exchanges yet. Send a message to get started.",
		})
		return
	}

	if len(log) > config.HistoryPageSize {
		log = log[len(log)-config.HistoryPageSize:]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📜 *Last %d exchange(s):*\n\n", len(log))
	for _, ex := range log {
		state := ""
		if ex.State != "" {
			state = fmt.Sprintf(" %s %s", render.StateBadge(ex.State), ex.State)
		}
		fmt.Fprintf(&sb, "🧑 %s\n🤖%s %s\n\n", truncate(ex.Message, 200), state, truncate(ex.Response, 200))
	}

	tg.SendLongMessage(ctx, b, chatID, sb.String(), nil)
}

func (h *Handler) handleReset(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	chatID := update.Message.Chat.ID

	cleared := h.attachments.Reset(chatID)
	h.history.Clear(chatID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("🧹 Dropped %d attachment(s) and cleared the conversation history.", cleared),
	})
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
