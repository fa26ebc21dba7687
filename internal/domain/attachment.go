package domain

import (
	"sync"

	"github.com/google/uuid"
)

type AttachmentKind string

const (
	AttachmentImage    AttachmentKind = "image"
	AttachmentDocument AttachmentKind = "document"
)

// Attachment is one user-selected file pending submission.
// Image attachments always carry a preview; documents never do.
type Attachment struct {
	ID       uuid.UUID
	Name     string
	MimeType string
	Data     []byte
	Kind     AttachmentKind
	Preview  *Preview
}

// Preview holds transient thumbnail bytes for an image attachment.
// It must be released exactly once; the bytes are unusable afterwards.
type Preview struct {
	mu       sync.Mutex
	data     []byte
	released bool
}

func NewPreview(data []byte) *Preview {
	return &Preview{data: data}
}

// Bytes returns the thumbnail bytes, which may be empty when thumbnail
// generation failed for an otherwise valid image.
func (p *Preview) Bytes() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return nil, ErrPreviewReleased
	}
	return p.data, nil
}

func (p *Preview) Release() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return ErrPreviewReleased
	}
	p.released = true
	p.data = nil
	return nil
}

func (p *Preview) Released() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released
}
