package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrPreviewReleased = errors.New("preview already released")
)
