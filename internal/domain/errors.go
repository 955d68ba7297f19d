package domain

import "errors"

// Error taxonomy for the ingestion and streaming pipelines. Pipeline code
// wraps these with fmt.Errorf("%w: ...") to carry diagnostic detail; the
// HTTP adapter maps them to status codes with errors.Is.
var (
	ErrInvalidFormat = errors.New("invalid media format")
	ErrStorageWrite  = errors.New("storage write failed")
	ErrTranscode     = errors.New("transcode failed")
	ErrThumbnail     = errors.New("thumbnail extraction failed")
	ErrInvalidRange  = errors.New("invalid byte range")
	ErrNotFound      = errors.New("asset not found")
	ErrBusy          = errors.New("transcoding capacity exhausted")
)
