package domain

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CanonicalExt is the container every stored media file is normalized to.
const CanonicalExt = ".mp4"

// CanonicalMIMEType is the content type served for all stored media.
const CanonicalMIMEType = "video/mp4"

// MediaAsset is the persisted record for one ingested video and its
// derived thumbnail. Assets are created exactly once during ingestion
// and never updated in place.
type MediaAsset struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Categories     []string  `json:"categories"`
	StoredFileName string    `json:"stored_file_name"`
	ThumbnailRef   string    `json:"thumbnail_ref"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewMediaAsset(token, title, description string, categories []string, storedFileName, thumbnailRef string) *MediaAsset {
	return &MediaAsset{
		ID:             token,
		Title:          title,
		Description:    description,
		Categories:     DedupCategories(categories),
		StoredFileName: storedFileName,
		ThumbnailRef:   thumbnailRef,
		CreatedAt:      time.Now(),
	}
}

// NewToken returns a globally unique token used both as the asset id and
// as the base of every on-disk name. Random, not a counter, so concurrent
// ingestions never need to coordinate.
func NewToken() string {
	return uuid.NewString()
}

// StorageName derives the on-disk name for an upload from its token and
// normalized extension. Pure string transformation, no I/O.
func StorageName(token, ext string) string {
	return token + strings.ToLower(ext)
}

// ThumbnailName derives the on-disk name of the thumbnail for a token.
func ThumbnailName(token string) string {
	return token + "_thumb.jpg"
}

// CanonicalName returns the storage name after transcoding, always with
// the canonical extension.
func CanonicalName(storedName string) string {
	return strings.TrimSuffix(storedName, filepath.Ext(storedName)) + CanonicalExt
}

// DedupCategories removes entries equal under case-insensitive comparison,
// keeping the casing of the first occurrence. Insertion order is preserved
// but not significant.
func DedupCategories(categories []string) []string {
	seen := make(map[string]bool, len(categories))
	result := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		key := strings.ToLower(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, c)
	}
	return result
}
