package domain

import (
	"time"

	"github.com/google/uuid"
)

// Exchange is one user message paired with the assistant's reply.
// Appended to the per-chat session history and never mutated afterwards.
type Exchange struct {
	ID        uuid.UUID
	Message   string
	Response  string
	State     string
	Records   []map[string]any
	CreatedAt time.Time
}

func (e *Exchange) HasRecords() bool {
	return len(e.Records) > 0
}
