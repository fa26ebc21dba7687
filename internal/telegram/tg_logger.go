package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
)

// OpsLogger mirrors noteworthy events into an operator chat. Disabled when
// no chat id is configured.
type OpsLogger struct {
	bot    *bot.Bot
	chatID int64
}

func NewOpsLogger(b *bot.Bot, chatID int64) *OpsLogger {
	return &OpsLogger{bot: b, chatID: chatID}
}

func (l *OpsLogger) log(message string) {
	if l.chatID == 0 {
		return
	}

	if len([]rune(message)) > MaxMessageLen {
		message = string([]rune(message)[:MaxMessageLen-20]) + "\n\n... (truncated)"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	params := &bot.SendMessageParams{
		ChatID:    l.chatID,
		Text:      message,
		ParseMode: "Markdown",
	}
	// Embedded error strings may carry stray backticks.
	if !IsValidMarkdownV2(message) {
		params.ParseMode = ""
	}

	_, err := l.bot.SendMessage(ctx, params)
	if err != nil {
		slog.Error("failed to send ops log", "error", err)
	}
}

func (l *OpsLogger) LogError(err error, context string) {
	l.log(fmt.Sprintf("❌ *Error*\n\n*Context:* %s\n*Error:* `%s`\n*Time:* %s",
		context, err.Error(), time.Now().Format("2006-01-02 15:04:05")))
}

func (l *OpsLogger) LogPlanCreated(telegramID int64, planID string) {
	l.log(fmt.Sprintf("📋 *Plan Created*\n\n*User:* `%d`\n*Plan:* `%s`", telegramID, planID))
}
