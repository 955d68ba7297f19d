package port

import "context"

// Transcoder normalizes stored media into the canonical container/codec.
type Transcoder interface {
	// Transcode produces the canonical file for inputPath at a deterministic
	// output path derived from the input's base name. When the input is
	// already canonical it returns inputPath unchanged without re-encoding.
	Transcode(ctx context.Context, inputPath string) (outputPath string, err error)

	// Probe reports the primary video stream's dimensions and duration.
	Probe(ctx context.Context, inputPath string) (ProbeInfo, error)
}

type ProbeInfo struct {
	Width    int
	Height   int
	Duration float64 // seconds
}
