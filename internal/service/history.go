package service

import (
	"sync"

	"github.com/set-night/invoicedesk/internal/domain"
)

// History keeps the per-chat session log of exchanges. It lives in memory
// only; a restart starts a fresh session.
type History struct {
	mu        sync.RWMutex
	max       int
	exchanges map[int64][]domain.Exchange
}

func NewHistory(max int) *History {
	return &History{
		max:       max,
		exchanges: make(map[int64][]domain.Exchange),
	}
}

// Append adds an exchange to the chat's log, dropping the oldest entry once
// the cap is reached.
func (h *History) Append(chatID int64, ex domain.Exchange) {
	h.mu.Lock()
	defer h.mu.Unlock()

	log := append(h.exchanges[chatID], ex)
	if len(log) > h.max {
		log = log[len(log)-h.max:]
	}
	h.exchanges[chatID] = log
}

// List returns a copy of the chat's log in append order.
func (h *History) List(chatID int64) []domain.Exchange {
	h.mu.RLock()
	defer h.mu.RUnlock()

	log := h.exchanges[chatID]
	out := make([]domain.Exchange, len(log))
	copy(out, log)
	return out
}

func (h *History) Len(chatID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.exchanges[chatID])
}

func (h *History) Clear(chatID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.exchanges, chatID)
}
