package attachment

import (
	"log/slog"
	"mime"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/set-night/invoicedesk/internal/domain"
)

// RawFile is a file as received from Telegram, before classification.
type RawFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// Summary reports the outcome of one Add batch.
type Summary struct {
	Images    int
	Documents int
	Skipped   int // unsupported kind
	Dropped   int // over capacity
}

func (s Summary) Accepted() int {
	return s.Images + s.Documents
}

// Manager keeps the per-chat attachment collections: ordered, bounded, with
// preview lifetimes owned by the manager. All mutation goes through Add,
// Remove and Reset.
type Manager struct {
	mu          sync.Mutex
	limit       int
	collections map[int64][]domain.Attachment
}

func NewManager(limit int) *Manager {
	return &Manager{
		limit:       limit,
		collections: make(map[int64][]domain.Attachment),
	}
}

func (m *Manager) Limit() int {
	return m.limit
}

// Add classifies and appends a batch of files to the chat's collection.
// Unsupported files are skipped with a warning, and files beyond the
// remaining capacity are dropped silently. Order of the batch is preserved.
func (m *Manager) Add(chatID int64, files []RawFile) Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	var summary Summary
	collection := m.collections[chatID]

	for _, f := range files {
		kind, ok := classify(f)
		if !ok {
			slog.Warn("skipping unsupported attachment", "chat_id", chatID, "name", f.Name, "mime_type", f.MimeType)
			summary.Skipped++
			continue
		}

		if len(collection) >= m.limit {
			summary.Dropped++
			continue
		}

		att := domain.Attachment{
			ID:       uuid.New(),
			Name:     f.Name,
			MimeType: f.MimeType,
			Data:     f.Data,
			Kind:     kind,
		}

		if kind == domain.AttachmentImage {
			thumb, err := thumbnailJPEG(f.Data)
			if err != nil {
				slog.Warn("thumbnail generation failed", "chat_id", chatID, "name", f.Name, "error", err)
			}
			att.Preview = domain.NewPreview(thumb)
			summary.Images++
		} else {
			summary.Documents++
		}

		collection = append(collection, att)
	}

	m.collections[chatID] = collection
	return summary
}

// Remove drops the attachment with the given id, releasing its preview
// first. Unknown ids are a no-op.
func (m *Manager) Remove(chatID int64, id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	collection := m.collections[chatID]
	for i, att := range collection {
		if att.ID != id {
			continue
		}
		releasePreview(att)
		m.collections[chatID] = append(collection[:i:i], collection[i+1:]...)
		return true
	}
	return false
}

// Reset releases every preview and empties the chat's collection.
func (m *Manager) Reset(chatID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	collection := m.collections[chatID]
	for _, att := range collection {
		releasePreview(att)
	}
	delete(m.collections, chatID)
	return len(collection)
}

// List returns a copy of the chat's collection in insertion order.
func (m *Manager) List(chatID int64) []domain.Attachment {
	m.mu.Lock()
	defer m.mu.Unlock()

	collection := m.collections[chatID]
	out := make([]domain.Attachment, len(collection))
	copy(out, collection)
	return out
}

func (m *Manager) Count(chatID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.collections[chatID])
}

func releasePreview(att domain.Attachment) {
	if att.Preview == nil {
		return
	}
	if err := att.Preview.Release(); err != nil {
		slog.Error("preview release failed", "attachment_id", att.ID, "error", err)
	}
}

// classify maps a raw file to an attachment kind. Images are recognized by
// MIME family, PDFs by MIME type or filename suffix; everything else is
// unsupported.
func classify(f RawFile) (domain.AttachmentKind, bool) {
	mimeType := f.MimeType
	if mimeType == "" || mimeType == "application/octet-stream" {
		if detected := mime.TypeByExtension(filepath.Ext(f.Name)); detected != "" {
			mimeType = detected
		}
	}

	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return domain.AttachmentImage, true
	case mimeType == "application/pdf",
		strings.EqualFold(filepath.Ext(f.Name), ".pdf"):
		return domain.AttachmentDocument, true
	default:
		return "", false
	}
}
