package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/set-night/invoicedesk/internal/domain"
)

type countingFetcher struct {
	mu     sync.Mutex
	direct bool
	err    error
	calls  int
}

func (f *countingFetcher) TeamMode(context.Context, string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.direct, f.err
}

func TestTeamModeCache_CachesWithinTTL(t *testing.T) {
	f := &countingFetcher{direct: true}
	c := NewTeamModeCache(f, time.Minute)
	user := &domain.User{TelegramID: 42}

	assert.True(t, c.Resolve(context.Background(), user))
	assert.True(t, c.Resolve(context.Background(), user))
	assert.Equal(t, 1, f.calls)
}

func TestTeamModeCache_InvalidateForcesRefetch(t *testing.T) {
	f := &countingFetcher{direct: true}
	c := NewTeamModeCache(f, time.Minute)
	user := &domain.User{TelegramID: 42}

	c.Resolve(context.Background(), user)
	f.direct = false
	c.Invalidate(user)

	assert.False(t, c.Resolve(context.Background(), user))
	assert.Equal(t, 2, f.calls)
}

func TestTeamModeCache_ErrorAssumesPlanMode(t *testing.T) {
	f := &countingFetcher{direct: true, err: assert.AnError}
	c := NewTeamModeCache(f, time.Minute)
	user := &domain.User{TelegramID: 42}

	assert.False(t, c.Resolve(context.Background(), user))

	// Errors are not cached; the next resolve tries again.
	f.err = nil
	assert.True(t, c.Resolve(context.Background(), user))
}
