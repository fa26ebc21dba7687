package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"

	"github.com/set-night/invoicedesk/internal/attachment"
	"github.com/set-night/invoicedesk/internal/domain"
	"github.com/set-night/invoicedesk/internal/middleware"
	tg "github.com/set-night/invoicedesk/internal/telegram"
)

// HandleAttachment collects photos and documents into the pending set.
func (h *Handler) HandleAttachment(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	msg := update.Message
	chatID := msg.Chat.ID

	var files []attachment.RawFile

	if len(msg.Photo) > 0 {
		// Telegram orders photo sizes smallest first.
		photo := msg.Photo[len(msg.Photo)-1]
		data, name, err := tg.DownloadFile(ctx, b, photo.FileID)
		if err != nil {
			slog.Error("download photo", "chat_id", chatID, "error", err)
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "❌ Could not download the photo. Please try again.",
			})
			return
		}
		files = append(files, attachment.RawFile{Name: name, MimeType: "image/jpeg", Data: data})
	}

	if msg.Document != nil {
		data, name, err := tg.DownloadFile(ctx, b, msg.Document.FileID)
		if err != nil {
			slog.Error("download document", "chat_id", chatID, "error", err)
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   "❌ Could not download the file. Please try again.",
			})
			return
		}
		if msg.Document.FileName != "" {
			name = msg.Document.FileName
		}
		files = append(files, attachment.RawFile{Name: name, MimeType: msg.Document.MimeType, Data: data})
	}

	if len(files) == 0 {
		return
	}

	summary := h.attachments.Add(chatID, files)

	var lines []string
	if summary.Accepted() > 0 {
		lines = append(lines, fmt.Sprintf("📎 Attached: %d image(s), %d document(s) (%d/%d).",
			summary.Images, summary.Documents, h.attachments.Count(chatID), h.attachments.Limit()))
	}
	if summary.Skipped > 0 {
		lines = append(lines, "⚠️ Unsupported file type skipped. Only images and PDF files are accepted.")
	}
	if summary.Dropped > 0 {
		lines = append(lines, fmt.Sprintf("⚠️ Attachment limit reached, %d file(s) dropped.", summary.Dropped))
	}
	if len(lines) > 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   strings.Join(lines, "\n"),
		})
	}

	// A caption submits the whole bundle right away.
	if caption := strings.TrimSpace(msg.Caption); caption != "" {
		h.submit(ctx, b, chatID, msg.ID, caption)
	}
}

func (h *Handler) handleFiles(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	chatID := update.Message.Chat.ID
	text, markup := h.filesView(chatID)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
}

// filesView renders the pending attachment list with per-file controls.
func (h *Handler) filesView(chatID int64) (string, models.ReplyMarkup) {
	list := h.attachments.List(chatID)
	if len(list) == 0 {
		return "📎 No pending attachments. Send an image or a PDF to attach one.", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📎 Pending attachments (%d/%d):\n", len(list), h.attachments.Limit())

	var rows [][]models.InlineKeyboardButton
	for i, att := range list {
		icon := "📄"
		label := fmt.Sprintf("%d. %s", i+1, att.Name)
		labelData := "noop"
		if att.Kind == domain.AttachmentImage {
			icon = "🖼"
			labelData = "att_pv_" + att.ID.String()
		}
		fmt.Fprintf(&sb, "%s %s\n", icon, att.Name)

		rows = append(rows, tg.ButtonRow(
			tg.InlineButton(label, labelData),
			tg.InlineButton("❌", "att_rm_"+att.ID.String()),
		))
	}
	sb.WriteString("\nSend a text message to submit them, or remove files below.")

	return sb.String(), tg.InlineKeyboard(rows...)
}

func (h *Handler) handleAttachmentRemove(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})

	msg := update.CallbackQuery.Message.Message
	if msg == nil {
		return
	}
	chatID := msg.Chat.ID

	id, err := uuid.Parse(strings.TrimPrefix(update.CallbackQuery.Data, "att_rm_"))
	if err != nil {
		return
	}

	h.attachments.Remove(chatID, id)

	text, markup := h.filesView(chatID)
	tg.EditLongMessage(ctx, b, chatID, msg.ID, text, markup)
}

func (h *Handler) handleAttachmentPreview(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	msg := update.CallbackQuery.Message.Message
	if msg == nil {
		return
	}
	chatID := msg.Chat.ID

	id, err := uuid.Parse(strings.TrimPrefix(update.CallbackQuery.Data, "att_pv_"))
	if err != nil {
		return
	}

	var preview *domain.Preview
	var name string
	for _, att := range h.attachments.List(chatID) {
		if att.ID == id {
			preview = att.Preview
			name = att.Name
			break
		}
	}

	if preview == nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
			Text:            "Preview unavailable.",
		})
		return
	}

	thumb, err := preview.Bytes()
	if err != nil || len(thumb) == 0 {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
			Text:            "Preview unavailable.",
		})
		return
	}

	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: update.CallbackQuery.ID})
	if err := tg.SendPhotoBytes(ctx, b, chatID, name, thumb, name); err != nil {
		slog.Error("send preview", "chat_id", chatID, "error", err)
	}
}
