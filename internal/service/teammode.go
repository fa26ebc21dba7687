package service

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/set-night/invoicedesk/internal/domain"
)

type teamModeFetcher interface {
	TeamMode(ctx context.Context, userID string) (bool, error)
}

type teamModeEntry struct {
	direct   bool
	cachedAt time.Time
}

// TeamModeCache resolves and caches the per-user direct-chat flag. The flag
// is refetched after the TTL expires or when the user's team selection
// changes (Invalidate).
type TeamModeCache struct {
	mu      sync.RWMutex
	fetcher teamModeFetcher
	ttl     time.Duration
	entries map[int64]teamModeEntry
}

func NewTeamModeCache(fetcher teamModeFetcher, ttl time.Duration) *TeamModeCache {
	return &TeamModeCache{
		fetcher: fetcher,
		ttl:     ttl,
		entries: make(map[int64]teamModeEntry),
	}
}

// Resolve returns the cached flag or fetches a fresh one. A fetch failure
// resolves to plan mode, mirroring the backend's own fallback when the team
// lookup fails.
func (c *TeamModeCache) Resolve(ctx context.Context, user *domain.User) bool {
	c.mu.RLock()
	entry, ok := c.entries[user.TelegramID]
	c.mu.RUnlock()

	if ok && time.Since(entry.cachedAt) <= c.ttl {
		return entry.direct
	}

	direct, err := c.fetcher.TeamMode(ctx, strconv.FormatInt(user.TelegramID, 10))
	if err != nil {
		slog.Warn("team mode lookup failed, assuming plan mode", "telegram_id", user.TelegramID, "error", err)
		return false
	}

	c.mu.Lock()
	c.entries[user.TelegramID] = teamModeEntry{direct: direct, cachedAt: time.Now()}
	c.mu.Unlock()

	return direct
}

// Invalidate drops the cached flag so the next Resolve refetches it. Called
// whenever the user's team selection changes.
func (c *TeamModeCache) Invalidate(user *domain.User) {
	c.mu.Lock()
	delete(c.entries, user.TelegramID)
	c.mu.Unlock()
}
