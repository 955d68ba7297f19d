// Package thumbnail derives the fixed-size preview image for a canonical
// media file: ffmpeg grabs one frame, imaging scales it to a square JPEG.
package thumbnail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/jmllr/vidvault/internal/domain"
	"github.com/jmllr/vidvault/internal/port"
)

// FrameExtractor captures a single frame of a media file to an image file.
type FrameExtractor interface {
	ExtractFrame(ctx context.Context, inputPath, outputPath string, offsetSec int) error
}

type Generator struct {
	extractor FrameExtractor
	offsetSec int
	size      int
}

func NewGenerator(extractor FrameExtractor, offsetSec, size int) *Generator {
	return &Generator{
		extractor: extractor,
		offsetSec: offsetSec,
		size:      size,
	}
}

// Generate extracts a frame at the configured offset and writes it as a
// size×size aspect-fill JPEG at outputPath. Any failure (video shorter
// than the offset, corrupt stream, encode error) aborts with
// domain.ErrThumbnail; there is no placeholder fallback.
func (g *Generator) Generate(ctx context.Context, inputPath, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("%w: create thumbnail directory: %v", domain.ErrThumbnail, err)
	}

	framePath := outputPath + ".frame.jpg"
	if err := g.extractor.ExtractFrame(ctx, inputPath, framePath, g.offsetSec); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrThumbnail, err)
	}
	defer os.Remove(framePath)

	frame, err := imaging.Open(framePath)
	if err != nil {
		return fmt.Errorf("%w: open frame: %v", domain.ErrThumbnail, err)
	}

	thumb := imaging.Fill(frame, g.size, g.size, imaging.Center, imaging.Lanczos)

	if err := imaging.Save(thumb, outputPath); err != nil {
		_ = os.Remove(outputPath)
		return fmt.Errorf("%w: save: %v", domain.ErrThumbnail, err)
	}

	return nil
}

var _ port.Thumbnailer = (*Generator)(nil)
