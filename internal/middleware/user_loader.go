package middleware

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/invoicedesk/internal/domain"
	"github.com/set-night/invoicedesk/internal/service"
)

type ctxKey string

const userKey ctxKey = "user"

// GetUser extracts the domain user from context.
func GetUser(ctx context.Context) *domain.User {
	u, ok := ctx.Value(userKey).(*domain.User)
	if !ok {
		return nil
	}
	return u
}

// UserLoader returns middleware that upserts the sender and threads the
// domain user through context.
func UserLoader(userService *service.UserService, cfg interface{ IsAdmin(int64) bool }) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var from *models.User

			if update.Message != nil {
				from = update.Message.From
			} else if update.CallbackQuery != nil {
				from = &update.CallbackQuery.From
			}

			if from == nil {
				next(ctx, b, update)
				return
			}

			user, err := userService.FindOrCreate(ctx, from.ID, from.FirstName, from.Username, cfg.IsAdmin(from.ID))
			if err != nil {
				slog.Error("load user", "telegram_id", from.ID, "error", err)
			} else {
				ctx = context.WithValue(ctx, userKey, user)
			}

			next(ctx, b, update)
		}
	}
}
