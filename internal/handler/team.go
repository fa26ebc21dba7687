package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"

	"github.com/set-night/invoicedesk/internal/middleware"
)

func (h *Handler) handleTeam(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	chatID := update.Message.Chat.ID
	arg := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/team"))

	if arg == "" {
		if !user.HasTeam() {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "You are not in a team yet. Use /team <team id> to join one.",
			})
			return
		}

		direct := h.teamMode.Resolve(ctx, user)
		mode := lo.Ternary(direct, "direct chat", "plan review")
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      fmt.Sprintf("👥 Team: `%s`\nSubmissions go through %s.", user.TeamID, mode),
			ParseMode: models.ParseModeMarkdownV1,
		})
		return
	}

	if err := h.userService.SetTeam(ctx, user, arg); err != nil {
		slog.Error("set team", "telegram_id", user.TelegramID, "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Could not update your team. Please try again.",
		})
		return
	}

	// The backend may route the new team differently.
	h.teamMode.Invalidate(user)
	direct := h.teamMode.Resolve(ctx, user)
	mode := lo.Ternary(direct, "direct chat", "plan review")

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      fmt.Sprintf("✅ Team set to `%s`. Submissions go through %s.", arg, mode),
		ParseMode: models.ParseModeMarkdownV1,
	})
}
