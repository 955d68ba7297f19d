// Package ffmpeg invokes the external ffmpeg/ffprobe binaries to normalize
// uploads into the canonical H.264/AAC MP4 and to inspect media streams.
package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jmllr/vidvault/internal/domain"
	"github.com/jmllr/vidvault/internal/port"
)

var (
	ErrEmptyPath   = errors.New("path is empty")
	ErrInvalidPath = errors.New("path contains invalid characters")
)

// Options carries the codec settings for canonical output.
type Options struct {
	VideoCodec string // e.g. libx264
	AudioCodec string // e.g. aac
	CRF        int    // constant rate factor, bounded quality setting
}

type Transcoder struct {
	opts Options
}

func NewTranscoder(opts Options) *Transcoder {
	return &Transcoder{opts: opts}
}

// Transcode produces the canonical MP4 for inputPath at a deterministic
// path derived from the input's base name. When the input is already an
// MP4 it is reused as-is, no re-encode. The caller owns deletion of the
// original after a successful conversion.
func (t *Transcoder) Transcode(ctx context.Context, inputPath string) (string, error) {
	if err := validatePath(inputPath); err != nil {
		return "", fmt.Errorf("%w: invalid input path: %v", domain.ErrTranscode, err)
	}

	ext := strings.ToLower(filepath.Ext(inputPath))
	if ext == domain.CanonicalExt {
		return inputPath, nil
	}

	outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + domain.CanonicalExt

	args := []string{
		"-i", inputPath,
		"-c:v", t.opts.VideoCodec,
		"-crf", strconv.Itoa(t.opts.CRF),
		"-preset", "medium",
		"-c:a", t.opts.AudioCodec,
		"-b:a", "128k",
		"-movflags", "+faststart",
		"-y", outputPath,
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrTranscode, ctx.Err())
		}
		return "", fmt.Errorf("%w: ffmpeg: %v: %s", domain.ErrTranscode, err, lastStderrLine(stderr.String()))
	}

	return outputPath, nil
}

// Probe reports dimensions and duration of the primary video stream via
// ffprobe's JSON output.
func (t *Transcoder) Probe(ctx context.Context, inputPath string) (port.ProbeInfo, error) {
	if err := validatePath(inputPath); err != nil {
		return port.ProbeInfo{}, fmt.Errorf("invalid input path: %w", err)
	}

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		inputPath,
	}
	cmd := exec.CommandContext(ctx, "ffprobe", args...)

	output, err := cmd.Output()
	if err != nil {
		return port.ProbeInfo{}, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(output, &probe); err != nil {
		return port.ProbeInfo{}, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	duration, _ := strconv.ParseFloat(probe.Format.Duration, 64)

	for _, stream := range probe.Streams {
		if stream.CodecType == "video" {
			return port.ProbeInfo{
				Width:    stream.Width,
				Height:   stream.Height,
				Duration: duration,
			}, nil
		}
	}

	return port.ProbeInfo{}, fmt.Errorf("no video stream found")
}

// ExtractFrame grabs a single frame at offsetSec into outputPath.
func (t *Transcoder) ExtractFrame(ctx context.Context, inputPath, outputPath string, offsetSec int) error {
	if err := validatePath(inputPath); err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}
	if err := validatePath(outputPath); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	args := []string{
		"-ss", strconv.Itoa(offsetSec),
		"-i", inputPath,
		"-vframes", "1",
		"-f", "image2",
		"-y", outputPath,
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg frame extraction: %w: %s", err, lastStderrLine(stderr.String()))
	}
	return nil
}

func validatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(path, 0) {
		return ErrInvalidPath
	}
	return nil
}

// lastStderrLine keeps errors readable: ffmpeg prints a banner and progress
// before the actual diagnostic, which is almost always the final line.
func lastStderrLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}

var _ port.Transcoder = (*Transcoder)(nil)
