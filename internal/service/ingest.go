package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmllr/vidvault/internal/adapter/http/validation"
	"github.com/jmllr/vidvault/internal/domain"
	"github.com/jmllr/vidvault/internal/infrastructure/logger"
	"github.com/jmllr/vidvault/internal/port"
)

// Upload describes one incoming ingestion request.
type Upload struct {
	Title       string
	Description string
	Categories  []string
	Filename    string
	ContentType string
	Size        int64
	File        io.Reader
}

// IngestService runs the full ingestion pipeline synchronously within the
// caller's request: validate, write, transcode, thumbnail, persist. The
// transcode step is gated by a fixed number of slots so CPU-heavy encodes
// cannot starve concurrent streaming reads.
type IngestService struct {
	store            port.AssetStore
	writer           port.BlobWriter
	transcoder       port.Transcoder
	thumbs           port.Thumbnailer
	validator        *validation.Validator
	mediaDir         string
	thumbDir         string
	thumbOffsetSec   int
	transcodeTimeout timeoutFunc
	slots            chan struct{}
}

// timeoutFunc wraps a context with the transcode deadline.
type timeoutFunc func(ctx context.Context) (context.Context, context.CancelFunc)

type IngestOptions struct {
	MediaDir         string
	ThumbDir         string
	ThumbOffsetSec   int
	TranscodeWorkers int
	TranscodeTimeout func(ctx context.Context) (context.Context, context.CancelFunc)
}

func NewIngestService(
	store port.AssetStore,
	writer port.BlobWriter,
	transcoder port.Transcoder,
	thumbs port.Thumbnailer,
	validator *validation.Validator,
	opts IngestOptions,
) *IngestService {
	timeout := opts.TranscodeTimeout
	if timeout == nil {
		timeout = func(ctx context.Context) (context.Context, context.CancelFunc) {
			return context.WithCancel(ctx)
		}
	}
	return &IngestService{
		store:            store,
		writer:           writer,
		transcoder:       transcoder,
		thumbs:           thumbs,
		validator:        validator,
		mediaDir:         opts.MediaDir,
		thumbDir:         opts.ThumbDir,
		thumbOffsetSec:   opts.ThumbOffsetSec,
		transcodeTimeout: timeout,
		slots:            make(chan struct{}, opts.TranscodeWorkers),
	}
}

// Ingest runs the pipeline end to end and returns the created asset. Every
// failure aborts the remaining steps, cleans up any artifacts already
// written for this request, and no record is persisted. A record is only
// persisted once both the canonical file and the thumbnail exist on disk.
func (s *IngestService) Ingest(ctx context.Context, up Upload) (*domain.MediaAsset, error) {
	ext, err := s.validator.Validate(up.Filename, up.ContentType, up.Size)
	if err != nil {
		return nil, err
	}

	token := domain.NewToken()
	uploadPath := filepath.Join(s.mediaDir, domain.StorageName(token, ext))

	written, err := s.writer.Write(uploadPath, up.File)
	if err != nil {
		return nil, err
	}
	logger.Info.Printf("upload stored: token=%s, name=%s, bytes=%d", token, logger.SanitizeForLog(up.Filename), written)

	canonicalPath, err := s.transcode(ctx, uploadPath)
	if err != nil {
		s.discard(uploadPath)
		return nil, err
	}

	if canonicalPath != uploadPath {
		// Original non-canonical upload is redundant once the canonical
		// file exists; deletion failure is non-fatal.
		if err := os.Remove(uploadPath); err != nil {
			logger.Warn.Printf("failed to remove original upload %s: %v", uploadPath, err)
		}
	}

	info, err := s.transcoder.Probe(ctx, canonicalPath)
	if err != nil {
		s.discard(canonicalPath)
		return nil, fmt.Errorf("%w: probe canonical output: %v", domain.ErrTranscode, err)
	}
	if info.Duration > 0 && info.Duration < float64(s.thumbOffsetSec) {
		s.discard(canonicalPath)
		return nil, fmt.Errorf("%w: video duration %.2fs is shorter than the %ds thumbnail offset",
			domain.ErrThumbnail, info.Duration, s.thumbOffsetSec)
	}

	thumbName := domain.ThumbnailName(token)
	thumbPath := filepath.Join(s.thumbDir, thumbName)
	if err := s.thumbs.Generate(ctx, canonicalPath, thumbPath); err != nil {
		s.discard(canonicalPath)
		return nil, err
	}

	asset := domain.NewMediaAsset(token, up.Title, up.Description, up.Categories,
		filepath.Base(canonicalPath), thumbName)
	if err := s.store.Save(asset); err != nil {
		s.discard(canonicalPath)
		s.discard(thumbPath)
		return nil, fmt.Errorf("persist media asset: %w", err)
	}

	logger.Info.Printf("asset created: id=%s, stored=%s, %dx%d", asset.ID, asset.StoredFileName, info.Width, info.Height)
	return asset, nil
}

// transcode acquires a worker slot without queueing: when all slots are
// busy the request is rejected with ErrBusy rather than piling up behind
// other encodes.
func (s *IngestService) transcode(ctx context.Context, uploadPath string) (string, error) {
	select {
	case s.slots <- struct{}{}:
	default:
		return "", fmt.Errorf("%w: all transcode slots in use", domain.ErrBusy)
	}
	defer func() { <-s.slots }()

	tctx, cancel := s.transcodeTimeout(ctx)
	defer cancel()

	return s.transcoder.Transcode(tctx, uploadPath)
}

func (s *IngestService) discard(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Error.Printf("cleanup failed for %s: %v", path, err)
	}
}

// Resolve maps an asset id to the on-disk path of its canonical media
// file. ErrNotFound covers both an unknown id and a record whose file has
// gone missing from disk.
func (s *IngestService) Resolve(id string) (*domain.MediaAsset, string, error) {
	asset, err := s.store.Get(id)
	if err != nil {
		return nil, "", err
	}

	path := filepath.Join(s.mediaDir, asset.StoredFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: stored file missing for %s", domain.ErrNotFound, id)
		}
		return nil, "", err
	}
	return asset, path, nil
}

// ListAll returns every persisted asset. No pagination; the full set is
// returned, a known scalability limitation of the listing endpoint.
func (s *IngestService) ListAll() ([]*domain.MediaAsset, error) {
	return s.store.ListAll()
}
