package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupCategories(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "case insensitive duplicates",
			input: []string{"Action", "action", "Drama"},
			want:  []string{"Action", "Drama"},
		},
		{
			name:  "first casing wins",
			input: []string{"Sci-Fi", "sci-fi"},
			want:  []string{"Sci-Fi"},
		},
		{
			name:  "empty entries dropped",
			input: []string{"", "  ", "Comedy"},
			want:  []string{"Comedy"},
		},
		{
			name:  "whitespace trimmed before comparison",
			input: []string{" Horror ", "horror"},
			want:  []string{"Horror"},
		},
		{
			name:  "nil input",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupCategories(tt.input))
		})
	}
}

func TestNewToken_UniqueUnderConcurrency(t *testing.T) {
	const n = 1000

	var mu sync.Mutex
	seen := make(map[string]bool, n)

	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token := NewToken()
			mu.Lock()
			defer mu.Unlock()
			assert.False(t, seen[token], "token collision: %s", token)
			seen[token] = true
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}

func TestStorageName(t *testing.T) {
	assert.Equal(t, "abc.mp4", StorageName("abc", ".mp4"))
	assert.Equal(t, "abc.avi", StorageName("abc", ".AVI"), "extension is normalized to lowercase")
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, "abc.mp4", CanonicalName("abc.avi"))
	assert.Equal(t, "abc.mp4", CanonicalName("abc.mov"))
	assert.Equal(t, "abc.mp4", CanonicalName("abc.mp4"))
}

func TestNewMediaAsset(t *testing.T) {
	asset := NewMediaAsset("tok", "Demo", "Test", []string{"Sci-Fi", "sci-fi"}, "tok.mp4", "tok_thumb.jpg")

	assert.Equal(t, "tok", asset.ID)
	assert.Equal(t, "Demo", asset.Title)
	assert.Equal(t, "Test", asset.Description)
	assert.Equal(t, []string{"Sci-Fi"}, asset.Categories)
	assert.Equal(t, "tok.mp4", asset.StoredFileName)
	assert.Equal(t, "tok_thumb.jpg", asset.ThumbnailRef)
	assert.False(t, asset.CreatedAt.IsZero())
}
