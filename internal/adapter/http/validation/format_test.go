package validation

import (
	"testing"

	"github.com/jmllr/vidvault/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator() *Validator {
	return NewValidator([]string{"mp4", "avi", "mov"})
}

func TestValidator_Validate_Accepted(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		wantExt     string
	}{
		{"mp4", "clip.mp4", "video/mp4", 1024, ".mp4"},
		{"avi x-msvideo", "clip.avi", "video/x-msvideo", 1024, ".avi"},
		{"avi plain", "clip.avi", "video/avi", 1024, ".avi"},
		{"mov quicktime", "clip.mov", "video/quicktime", 1024, ".mov"},
		{"uppercase extension", "CLIP.MP4", "video/mp4", 1024, ".mp4"},
		{"no content type", "clip.mp4", "", 1024, ".mp4"},
		{"octet-stream falls back to extension", "clip.mov", "application/octet-stream", 1024, ".mov"},
		{"content type with parameters", "clip.mp4", `video/mp4; codecs="avc1.42E01E"`, 1024, ".mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := newTestValidator().Validate(tt.filename, tt.contentType, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestValidator_Validate_Rejected(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
	}{
		{"zero size", "clip.mp4", "video/mp4", 0},
		{"negative size", "clip.mp4", "video/mp4", -1},
		{"mkv extension", "clip.mkv", "video/x-matroska", 1024},
		{"webm extension", "clip.webm", "video/webm", 1024},
		{"no extension", "clip", "video/mp4", 1024},
		{"image disguised as video name", "clip.mp4", "image/png", 1024},
		{"mismatched declared type", "clip.avi", "video/mp4", 1024},
		{"executable", "clip.exe", "application/x-msdownload", 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestValidator().Validate(tt.filename, tt.contentType, tt.size)
			assert.ErrorIs(t, err, domain.ErrInvalidFormat)
		})
	}
}

func TestNewValidator_CustomSet(t *testing.T) {
	v := NewValidator([]string{"mp4"})

	_, err := v.Validate("clip.avi", "video/x-msvideo", 1024)
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)

	ext, err := v.Validate("clip.mp4", "video/mp4", 1024)
	require.NoError(t, err)
	assert.Equal(t, ".mp4", ext)
}
