package port

import "context"

// Thumbnailer captures a single frame of a canonical media file into a
// fixed-size image at outputPath.
type Thumbnailer interface {
	Generate(ctx context.Context, inputPath, outputPath string) error
}
