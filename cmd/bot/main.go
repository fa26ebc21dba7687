package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	invoicedesk "github.com/set-night/invoicedesk"
	"github.com/set-night/invoicedesk/internal/attachment"
	"github.com/set-night/invoicedesk/internal/backend"
	"github.com/set-night/invoicedesk/internal/config"
	"github.com/set-night/invoicedesk/internal/handler"
	"github.com/set-night/invoicedesk/internal/middleware"
	"github.com/set-night/invoicedesk/internal/repository"
	"github.com/set-night/invoicedesk/internal/service"
	"github.com/set-night/invoicedesk/internal/telegram"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(invoicedesk.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Repositories
	users := repository.NewUsers(pool)
	plans := repository.NewPlans(pool)

	// Backend client and services
	client := backend.NewClient(cfg.BackendURL, cfg.BackendAPIKey)
	userService := service.NewUserService(users)
	attachments := attachment.NewManager(cfg.MaxAttachments)
	history := service.NewHistory(config.MaxHistoryExchanges)
	teamMode := service.NewTeamModeCache(client, config.TeamModeCacheDuration)
	submitter := service.NewSubmitter(client, attachments, history, teamMode, plans)

	// Handler pointer for use in default handler closure
	var h *handler.Handler

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.RateLimit(config.RateLimitPerMinute, config.RateLimitBurst),
			middleware.UserLoader(userService, cfg),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil || update.Message == nil {
				return
			}
			// Photos and documents arrive without a text entity
			if len(update.Message.Photo) > 0 || update.Message.Document != nil {
				h.HandleAttachment(ctx, b, update)
			}
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	if cfg.DropPendingUpdates {
		b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true})
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	// Ops log channel
	opsLog := telegram.NewOpsLogger(b, cfg.LogTelegramChatID)

	// Initialize handler
	h = handler.New(handler.Deps{
		Bot:         b,
		Cfg:         cfg,
		UserService: userService,
		Attachments: attachments,
		Submitter:   submitter,
		TeamMode:    teamMode,
		History:     history,
		Plans:       plans,
		OpsLog:      opsLog,
		BotUsername: me.Username,
	})

	// Register all handlers
	h.Register()

	// Register default text handler for submissions
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		// Skip commands
		if len(update.Message.Text) > 0 && update.Message.Text[0] == '/' {
			return
		}
		if update.Message.Chat.Type == "private" {
			h.HandleTextPrivate(ctx, b, update)
		}
	})

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	// Graceful shutdown
	slog.Info("bot stopped gracefully")
}
