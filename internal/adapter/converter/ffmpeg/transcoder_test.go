package ffmpeg

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmllr/vidvault/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{
			name:    "valid path",
			path:    "/tmp/video.mp4",
			wantErr: nil,
		},
		{
			name:    "valid path with spaces",
			path:    "/tmp/my video.mp4",
			wantErr: nil,
		},
		{
			name:    "valid relative path",
			path:    "video.mp4",
			wantErr: nil,
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: ErrEmptyPath,
		},
		{
			name:    "path with null byte",
			path:    "/tmp/\x00video.mp4",
			wantErr: ErrInvalidPath,
		},
		{
			name:    "path with null byte at end",
			path:    "/tmp/video.mp4\x00",
			wantErr: ErrInvalidPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePath(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validatePath(%q) = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func newTestTranscoder() *Transcoder {
	return &Transcoder{opts: Options{VideoCodec: "libx264", AudioCodec: "aac", CRF: 23}}
}

func TestTranscoder_Transcode_NoOpForCanonicalInput(t *testing.T) {
	// An already-canonical file must be reused as-is without invoking
	// ffmpeg, so this works even where the binary is absent.
	input := filepath.Join(t.TempDir(), "tok.mp4")

	out, err := newTestTranscoder().Transcode(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestTranscoder_Transcode_CanonicalExtensionCaseInsensitive(t *testing.T) {
	input := filepath.Join(t.TempDir(), "tok.MP4")

	out, err := newTestTranscoder().Transcode(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestTranscoder_Transcode_PathValidation(t *testing.T) {
	tests := []struct {
		name      string
		inputPath string
	}{
		{"empty input path", ""},
		{"null byte in input path", "/tmp/\x00video.avi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestTranscoder().Transcode(context.Background(), tt.inputPath)
			assert.ErrorIs(t, err, domain.ErrTranscode)
		})
	}
}

func TestTranscoder_Probe_PathValidation(t *testing.T) {
	_, err := newTestTranscoder().Probe(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = newTestTranscoder().Probe(context.Background(), "/tmp/\x00clip.mp4")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestTranscoder_ExtractFrame_PathValidation(t *testing.T) {
	tc := newTestTranscoder()

	err := tc.ExtractFrame(context.Background(), "", "/tmp/out.jpg", 1)
	assert.ErrorIs(t, err, ErrEmptyPath)

	err = tc.ExtractFrame(context.Background(), "/tmp/in.mp4", "/tmp/\x00out.jpg", 1)
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestLastStderrLine(t *testing.T) {
	stderr := "ffmpeg version 6.0\nbuilt with gcc\nInvalid data found when processing input\n"
	assert.Equal(t, "Invalid data found when processing input", lastStderrLine(stderr))

	assert.Equal(t, "", lastStderrLine(""))
	assert.Equal(t, "single", lastStderrLine("single"))
}
