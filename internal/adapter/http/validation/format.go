// Package validation checks declared upload formats before any bytes reach
// durable storage.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jmllr/vidvault/internal/domain"
)

// mimeForExt maps each accepted extension to the declared MIME types a
// client may send for it, including vendor-specific identifiers.
var mimeForExt = map[string][]string{
	"mp4": {"video/mp4"},
	"avi": {"video/avi", "video/x-msvideo", "video/msvideo"},
	"mov": {"video/quicktime", "video/mov"},
}

// Validator accepts or rejects uploads by declared content type, extension
// and size. Pure check, no I/O; it runs strictly before the storage writer
// so invalid uploads never produce partial files on disk.
type Validator struct {
	extensions map[string]bool
	mimeTypes  map[string]string // declared MIME -> normalized extension
}

// NewValidator builds a validator from the configured accepted extensions
// (lowercase, without the dot).
func NewValidator(acceptedExts []string) *Validator {
	v := &Validator{
		extensions: make(map[string]bool, len(acceptedExts)),
		mimeTypes:  make(map[string]string),
	}
	for _, ext := range acceptedExts {
		v.extensions[ext] = true
		for _, mime := range mimeForExt[ext] {
			v.mimeTypes[mime] = ext
		}
	}
	return v
}

// Validate checks the declared filename, content type and size of an
// upload. On success it returns the normalized lowercase extension
// (with leading dot) for downstream naming. On rejection it returns an
// error wrapping domain.ErrInvalidFormat.
func (v *Validator) Validate(filename, contentType string, size int64) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("%w: empty file", domain.ErrInvalidFormat)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" || !v.extensions[ext] {
		return "", fmt.Errorf("%w: extension %q is not accepted", domain.ErrInvalidFormat, ext)
	}

	// The declared content type must agree with the extension when present.
	// Multipart parts without a type header pass on extension alone.
	if mime := normalizeContentType(contentType); mime != "" && mime != "application/octet-stream" {
		if v.mimeTypes[mime] != ext {
			return "", fmt.Errorf("%w: content type %q does not match extension %q", domain.ErrInvalidFormat, mime, ext)
		}
	}

	return "." + ext, nil
}

// normalizeContentType strips parameters like "; codecs=..." and lowercases
// the media type.
func normalizeContentType(contentType string) string {
	mime := contentType
	if idx := strings.Index(mime, ";"); idx != -1 {
		mime = mime[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}
