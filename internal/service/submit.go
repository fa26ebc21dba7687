package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/set-night/invoicedesk/internal/attachment"
	"github.com/set-night/invoicedesk/internal/backend"
	"github.com/set-night/invoicedesk/internal/domain"
	"github.com/set-night/invoicedesk/internal/interpret"
)

type submitBackend interface {
	Chat(ctx context.Context, userID, message string, attachments []domain.Attachment) (string, error)
	CreatePlan(ctx context.Context, userID, teamID, message string) (*domain.PlanResult, error)
}

type planStore interface {
	Save(ctx context.Context, chatID int64, planID, message string) error
}

type OutcomeKind int

const (
	// OutcomeNone: empty message, nothing was submitted.
	OutcomeNone OutcomeKind = iota
	// OutcomeBusy: a submission for this chat is already in flight.
	OutcomeBusy
	// OutcomeReply: direct-chat response, recorded in history.
	OutcomeReply
	// OutcomePlan: a plan was created; Plan carries its id.
	OutcomePlan
	// OutcomePlanDirect: the plan endpoint answered directly instead.
	OutcomePlanDirect
	// OutcomeFailure: the submission failed; ErrText is user-facing.
	OutcomeFailure
)

type Outcome struct {
	Kind     OutcomeKind
	Exchange *domain.Exchange
	Plan     *domain.PlanResult
	ErrText  string
}

const genericFailure = "The request failed. Please try again."

// Submitter is the submission flow behind the chat input: it guards against
// concurrent submissions per chat, branches on the team-mode flag, and owns
// the post-success cleanup of attachments and the history append.
type Submitter struct {
	backend     submitBackend
	attachments *attachment.Manager
	history     *History
	teamMode    *TeamModeCache
	plans       planStore

	mu       sync.Mutex
	inflight map[int64]struct{}
}

func NewSubmitter(
	backend submitBackend,
	attachments *attachment.Manager,
	history *History,
	teamMode *TeamModeCache,
	plans planStore,
) *Submitter {
	return &Submitter{
		backend:     backend,
		attachments: attachments,
		history:     history,
		teamMode:    teamMode,
		plans:       plans,
		inflight:    make(map[int64]struct{}),
	}
}

// Submit runs one submission for the chat. The chat always returns to the
// idle state, whatever the branch outcome.
func (s *Submitter) Submit(ctx context.Context, user *domain.User, chatID int64, text string) Outcome {
	message := strings.TrimSpace(text)
	if message == "" {
		return Outcome{Kind: OutcomeNone}
	}

	if !s.begin(chatID) {
		return Outcome{Kind: OutcomeBusy}
	}
	defer s.end(chatID)

	if s.teamMode.Resolve(ctx, user) {
		return s.submitChat(ctx, user, chatID, message)
	}
	return s.submitPlan(ctx, user, chatID, message)
}

// Busy reports whether a submission is currently in flight for the chat.
func (s *Submitter) Busy(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inflight[chatID]
	return ok
}

func (s *Submitter) submitChat(ctx context.Context, user *domain.User, chatID int64, message string) Outcome {
	atts := s.attachments.List(chatID)

	body, err := s.backend.Chat(ctx, strconv.FormatInt(user.TelegramID, 10), message, atts)
	if err != nil {
		slog.Error("chat submission failed", "chat_id", chatID, "error", err)
		// Attachments stay untouched so the user can retry.
		return Outcome{Kind: OutcomeFailure, ErrText: failureText(err)}
	}

	reply := interpret.Response(body)
	ex := domain.Exchange{
		ID:        uuid.New(),
		Message:   message,
		Response:  reply.Text,
		State:     reply.State,
		Records:   reply.Records,
		CreatedAt: time.Now(),
	}

	s.history.Append(chatID, ex)
	s.attachments.Reset(chatID)

	return Outcome{Kind: OutcomeReply, Exchange: &ex}
}

func (s *Submitter) submitPlan(ctx context.Context, user *domain.User, chatID int64, message string) Outcome {
	result, err := s.backend.CreatePlan(ctx, strconv.FormatInt(user.TelegramID, 10), user.TeamID, message)
	if err != nil {
		slog.Error("plan creation failed", "chat_id", chatID, "error", err)
		return Outcome{Kind: OutcomeFailure, ErrText: failureText(err)}
	}

	if result.IsDirectFallback() {
		return Outcome{Kind: OutcomePlanDirect, Plan: result}
	}

	if result.PlanID == "" {
		slog.Warn("plan endpoint returned no plan id", "chat_id", chatID)
		return Outcome{Kind: OutcomeFailure, ErrText: "The backend did not return a plan. Please try again."}
	}

	if err := s.plans.Save(ctx, chatID, result.PlanID, message); err != nil {
		// The plan exists server-side; losing the local reference is not
		// a submission failure.
		slog.Error("save plan ref failed", "chat_id", chatID, "plan_id", result.PlanID, "error", err)
	}

	return Outcome{Kind: OutcomePlan, Plan: result}
}

func (s *Submitter) begin(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.inflight[chatID]; ok {
		return false
	}
	s.inflight[chatID] = struct{}{}
	return true
}

func (s *Submitter) end(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, chatID)
}

// failureText extracts the backend's human-readable message when one is
// present, otherwise falls back to a generic string.
func failureText(err error) string {
	var backendErr *backend.Error
	if errors.As(err, &backendErr) && backendErr.Message != "" {
		return backendErr.Message
	}
	return genericFailure
}
