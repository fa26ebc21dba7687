package middleware

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"golang.org/x/time/rate"
)

// RateLimit returns middleware that enforces a per-chat message rate.
func RateLimit(perMinute, burst int) bot.Middleware {
	var mu sync.Mutex
	limiters := make(map[int64]*rate.Limiter)

	limiterFor := func(chatID int64) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		l, ok := limiters[chatID]
		if !ok {
			l = rate.NewLimiter(rate.Limit(float64(perMinute)/60), burst)
			limiters[chatID] = l
		}
		return l
	}

	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			// Only rate limit messages (not callbacks or other updates)
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID

			if !limiterFor(chatID).Allow() {
				slog.Debug("rate limited", "chat_id", chatID)
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   "⏳ Too many requests. Please slow down.",
				})
				return
			}

			next(ctx, b, update)
		}
	}
}
