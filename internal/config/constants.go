package config

import "time"

const (
	// Backend request timeout
	RequestTimeout = 90 * time.Second

	// Team-mode flag cache duration
	TeamModeCacheDuration = 10 * time.Minute

	// Attachment previews
	ThumbnailMaxSize   = 320
	PreviewJPEGQuality = 80

	// Session history
	MaxHistoryExchanges = 50
	HistoryPageSize     = 10

	// Plan listing
	PlansPageSize = 10

	// Rate limits (per chat)
	RateLimitPerMinute = 20
	RateLimitBurst     = 5
)
