package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port             int
	DataDir          string
	MaxUploadSizeMB  int
	AcceptedFormats  []string // extensions without the dot, lowercase
	VideoCodec       string
	AudioCodec       string
	TranscodeCRF     int
	TranscodeTimeout time.Duration
	TranscodeWorkers int
	ThumbOffsetSec   int
	ThumbSize        int
}

func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	maxUploadSizeMB, err := strconv.Atoi(getEnv("MAX_UPLOAD_SIZE_MB", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE_MB: %w", err)
	}

	crf, err := strconv.Atoi(getEnv("TRANSCODE_CRF", "23"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRANSCODE_CRF: %w", err)
	}

	timeoutSec, err := strconv.Atoi(getEnv("TRANSCODE_TIMEOUT_SEC", "600"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRANSCODE_TIMEOUT_SEC: %w", err)
	}

	workers, err := strconv.Atoi(getEnv("TRANSCODE_WORKERS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRANSCODE_WORKERS: %w", err)
	}
	if workers < 1 {
		return nil, fmt.Errorf("TRANSCODE_WORKERS must be at least 1")
	}

	thumbOffsetSec, err := strconv.Atoi(getEnv("THUMB_OFFSET_SEC", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid THUMB_OFFSET_SEC: %w", err)
	}

	thumbSize, err := strconv.Atoi(getEnv("THUMB_SIZE", "256"))
	if err != nil {
		return nil, fmt.Errorf("invalid THUMB_SIZE: %w", err)
	}

	var formats []string
	for _, f := range strings.Split(getEnv("ACCEPTED_FORMATS", "mp4,avi,mov"), ",") {
		f = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(f, ".")))
		if f != "" {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("ACCEPTED_FORMATS must list at least one extension")
	}

	return &Config{
		Port:             port,
		DataDir:          getEnv("DATA_DIR", "./data"),
		MaxUploadSizeMB:  maxUploadSizeMB,
		AcceptedFormats:  formats,
		VideoCodec:       getEnv("VIDEO_CODEC", "libx264"),
		AudioCodec:       getEnv("AUDIO_CODEC", "aac"),
		TranscodeCRF:     crf,
		TranscodeTimeout: time.Duration(timeoutSec) * time.Second,
		TranscodeWorkers: workers,
		ThumbOffsetSec:   thumbOffsetSec,
		ThumbSize:        thumbSize,
	}, nil
}

// MediaDir is the flat directory holding canonical media files.
func (c *Config) MediaDir() string {
	return c.DataDir + "/media"
}

// ThumbDir is the flat directory holding derived thumbnails.
func (c *Config) ThumbDir() string {
	return c.DataDir + "/thumbs"
}

// MaxUploadBytes returns the upload size cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadSizeMB) * 1024 * 1024
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
