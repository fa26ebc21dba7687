package handler

import (
	"github.com/go-telegram/bot"

	"github.com/set-night/invoicedesk/internal/attachment"
	"github.com/set-night/invoicedesk/internal/config"
	"github.com/set-night/invoicedesk/internal/repository"
	"github.com/set-night/invoicedesk/internal/service"
	"github.com/set-night/invoicedesk/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot         *bot.Bot
	cfg         *config.Config
	userService *service.UserService
	attachments *attachment.Manager
	submitter   *service.Submitter
	teamMode    *service.TeamModeCache
	history     *service.History
	plans       *repository.Plans
	opsLog      *telegram.OpsLogger
	botUsername string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot         *bot.Bot
	Cfg         *config.Config
	UserService *service.UserService
	Attachments *attachment.Manager
	Submitter   *service.Submitter
	TeamMode    *service.TeamModeCache
	History     *service.History
	Plans       *repository.Plans
	OpsLog      *telegram.OpsLogger
	BotUsername string
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:         deps.Bot,
		cfg:         deps.Cfg,
		userService: deps.UserService,
		attachments: deps.Attachments,
		submitter:   deps.Submitter,
		teamMode:    deps.TeamMode,
		history:     deps.History,
		plans:       deps.Plans,
		opsLog:      deps.OpsLog,
		botUsername: deps.BotUsername,
	}
}
