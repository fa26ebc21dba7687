package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/invoicedesk/internal/middleware"
	"github.com/set-night/invoicedesk/internal/render"
	"github.com/set-night/invoicedesk/internal/service"
	tg "github.com/set-night/invoicedesk/internal/telegram"
)

// HandleTextPrivate submits private text messages to the backend.
func (h *Handler) HandleTextPrivate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	msg := update.Message

	// Commands have their own handlers.
	if strings.HasPrefix(msg.Text, "/") {
		return
	}

	h.submit(ctx, b, msg.Chat.ID, msg.ID, msg.Text)
}

// submit runs one submission and reports the outcome to the chat. Used for
// plain text messages and for attachment captions.
func (h *Handler) submit(ctx context.Context, b *bot.Bot, chatID int64, replyToID int, text string) {
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	out := h.submitter.Submit(ctx, user, chatID, text)

	switch out.Kind {
	case service.OutcomeNone:
		return

	case service.OutcomeBusy:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "⏳ Please wait for the previous request to finish.",
		})

	case service.OutcomeReply:
		tg.SendLongMessage(ctx, b, chatID, h.replyText(out), &replyToID)

	case service.OutcomePlanDirect:
		tg.SendLongMessage(ctx, b, chatID, out.Plan.Response, &replyToID)

	case service.OutcomePlan:
		h.opsLog.LogPlanCreated(user.TelegramID, out.Plan.PlanID)
		tg.SendLongMessage(ctx, b, chatID, fmt.Sprintf(
			"✅ Plan created: `%s`\n\nYour team will review it. Use /plans to see recent plans.",
			out.Plan.PlanID,
		), &replyToID)

	case service.OutcomeFailure:
		h.opsLog.LogError(errors.New(out.ErrText), fmt.Sprintf("submission chat_id=%d", chatID))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ " + out.ErrText,
		})
	}
}

// replyText formats a direct chat reply: state badge, message, and an
// extracted record table when present.
func (h *Handler) replyText(out service.Outcome) string {
	ex := out.Exchange

	var sb strings.Builder
	if ex.State != "" {
		fmt.Fprintf(&sb, "%s *%s*\n\n", render.StateBadge(ex.State), ex.State)
	}
	sb.WriteString(ex.Response)

	if ex.HasRecords() {
		sb.WriteString("\n\n```\n")
		sb.WriteString(render.Table(ex.Records))
		sb.WriteString("\n```")
	}

	return sb.String()
}
