package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jmllr/vidvault/config"
	"github.com/jmllr/vidvault/internal/adapter/converter/ffmpeg"
	HTTPAdapter "github.com/jmllr/vidvault/internal/adapter/http"
	"github.com/jmllr/vidvault/internal/adapter/http/validation"
	"github.com/jmllr/vidvault/internal/adapter/storage/disk"
	sqlitestore "github.com/jmllr/vidvault/internal/adapter/storage/sqlite"
	"github.com/jmllr/vidvault/internal/adapter/thumbnail"
	"github.com/jmllr/vidvault/internal/infrastructure/logger"
	"github.com/jmllr/vidvault/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error.Printf("failed to load config: %v", err)
		os.Exit(1)
	}

	logger.Info.Printf("starting vidvault on port %d, data dir %s", cfg.Port, cfg.DataDir)

	for _, dir := range []string{cfg.DataDir, cfg.MediaDir(), cfg.ThumbDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Error.Printf("failed to create directory %s: %v", dir, err)
			os.Exit(1)
		}
	}

	store, err := sqlitestore.NewStore(cfg.DataDir)
	if err != nil {
		logger.Error.Printf("failed to create store: %v", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	transcoder := ffmpeg.NewTranscoder(ffmpeg.Options{
		VideoCodec: cfg.VideoCodec,
		AudioCodec: cfg.AudioCodec,
		CRF:        cfg.TranscodeCRF,
	})
	thumbnailer := thumbnail.NewGenerator(transcoder, cfg.ThumbOffsetSec, cfg.ThumbSize)
	validator := validation.NewValidator(cfg.AcceptedFormats)

	ingestSvc := service.NewIngestService(store, disk.NewWriter(), transcoder, thumbnailer, validator,
		service.IngestOptions{
			MediaDir:         cfg.MediaDir(),
			ThumbDir:         cfg.ThumbDir(),
			ThumbOffsetSec:   cfg.ThumbOffsetSec,
			TranscodeWorkers: cfg.TranscodeWorkers,
			TranscodeTimeout: func(ctx context.Context) (context.Context, context.CancelFunc) {
				return context.WithTimeout(ctx, cfg.TranscodeTimeout)
			},
		})

	server := HTTPAdapter.NewServer(ingestSvc, cfg.ThumbDir(), cfg.MaxUploadBytes())

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info.Printf("received %s, shutting down", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error.Printf("http shutdown error: %v", err)
		}

		logger.Info.Printf("shutdown complete")
	}()

	logger.Info.Printf("server listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error.Printf("server failed: %v", err)
		os.Exit(1)
	}
}
