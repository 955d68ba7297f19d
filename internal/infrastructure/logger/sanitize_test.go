package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeForLog(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain filename unchanged",
			input: "holiday_clip.mp4",
			want:  "holiday_clip.mp4",
		},
		{
			name:  "newline escaped",
			input: "clip\nINFO: forged entry",
			want:  "clip\\nINFO: forged entry",
		},
		{
			name:  "carriage return escaped",
			input: "clip\rname",
			want:  "clip\\rname",
		},
		{
			name:  "tab escaped",
			input: "clip\tname",
			want:  "clip\\tname",
		},
		{
			name:  "null byte escaped",
			input: "clip\x00.mp4",
			want:  "clip\\x00.mp4",
		},
		{
			name:  "ansi escape escaped",
			input: "clip\x1b[31mred",
			want:  "clip\\x1b[31mred",
		},
		{
			name:  "unicode preserved",
			input: "vidéo_日本.mp4",
			want:  "vidéo_日本.mp4",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeForLog(tt.input))
		})
	}
}

func TestSanitizeForLog_Truncates(t *testing.T) {
	long := strings.Repeat("a", maxLoggedLen+100)
	got := SanitizeForLog(long)

	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Len(t, got, maxLoggedLen+3)
}
