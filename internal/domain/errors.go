package domain

import "errors"

var (
	// ErrMissingParameter marks client input errors; the HTTP layer maps it
	// to a 400. Everything else is a 500.
	ErrMissingParameter = errors.New("missing required parameters")

	ErrNotFound         = errors.New("not found")
	ErrGeneration       = errors.New("image generation failed")
	ErrDownload         = errors.New("image download failed")
	ErrQueueUnavailable = errors.New("job queue unavailable")
)
