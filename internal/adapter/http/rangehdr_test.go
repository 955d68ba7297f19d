package http

import (
	"testing"

	"github.com/jmllr/vidvault/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange_Valid(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		fileLength int64
		want       byteRange
	}{
		{"first hundred bytes", "bytes=0-99", 1000, byteRange{Start: 0, End: 99}},
		{"open end defaults to last byte", "bytes=500-", 1000, byteRange{Start: 500, End: 999}},
		{"last byte open end", "bytes=999-", 1000, byteRange{Start: 999, End: 999}},
		{"single byte span", "bytes=10-10", 1000, byteRange{Start: 10, End: 10}},
		{"full file explicit", "bytes=0-999", 1000, byteRange{Start: 0, End: 999}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRange(tt.header, tt.fileLength)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRange_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		fileLength int64
	}{
		{"start beyond file", "bytes=1000-", 1000},
		{"end beyond file", "bytes=0-1000", 1000},
		{"start after end", "bytes=200-100", 1000},
		{"multi-range unsupported", "bytes=0-99,200-299", 1000},
		{"suffix range unsupported", "bytes=-500", 1000},
		{"missing unit", "0-99", 1000},
		{"wrong unit", "items=0-99", 1000},
		{"non-numeric start", "bytes=abc-99", 1000},
		{"non-numeric end", "bytes=0-xyz", 1000},
		{"negative end", "bytes=0--5", 1000},
		{"no dash", "bytes=42", 1000},
		{"empty spec", "bytes=", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRange(tt.header, tt.fileLength)
			assert.ErrorIs(t, err, domain.ErrInvalidRange)
		})
	}
}

func TestByteRange_Length(t *testing.T) {
	assert.Equal(t, int64(100), byteRange{Start: 0, End: 99}.Length())
	assert.Equal(t, int64(1), byteRange{Start: 5, End: 5}.Length())
}
