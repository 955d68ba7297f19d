package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/jmllr/vidvault/internal/domain"
	"github.com/jmllr/vidvault/internal/infrastructure/logger"
	"github.com/jmllr/vidvault/internal/service"
)

// AssetService is the slice of the ingestion service the handlers need.
type AssetService interface {
	Ingest(ctx context.Context, up service.Upload) (*domain.MediaAsset, error)
	Resolve(id string) (*domain.MediaAsset, string, error)
	ListAll() ([]*domain.MediaAsset, error)
}

type Handlers struct {
	assets   AssetService
	maxBytes int64
}

func NewHandlers(assets AssetService, maxBytes int64) *Handlers {
	return &Handlers{
		assets:   assets,
		maxBytes: maxBytes,
	}
}

// Upload handles the multipart ingestion endpoint.
func (h *Handlers) Upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "File too large", err)
				return
			}
			writeError(w, http.StatusBadRequest, "Invalid multipart body", err)
			return
		}

		title := r.FormValue("title")
		description := r.FormValue("description")
		if title == "" || description == "" {
			writeError(w, http.StatusBadRequest, "Title and description are required", nil)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "No file uploaded", err)
			return
		}
		defer file.Close() //nolint:errcheck

		asset, err := h.assets.Ingest(r.Context(), service.Upload{
			Title:       title,
			Description: description,
			Categories:  r.Form["categories"],
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			File:        file,
		})
		if err != nil {
			logger.Error.Printf("ingest failed for %s: %v", logger.SanitizeForLog(header.Filename), err)
			status, message := mapError(err)
			writeError(w, status, message, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Video uploaded successfully",
			"assetId": asset.ID,
		})
	}
}

// List returns all persisted assets. No pagination in current scope.
func (h *Handlers) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assets, err := h.assets.ListAll()
		if err != nil {
			logger.Error.Printf("list assets: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to list videos", err)
			return
		}
		writeJSON(w, http.StatusOK, assets)
	}
}

// Stream serves a stored media file with single-range support. Without a
// Range header the full file is sent with a 200; with one, the requested
// span is sent as a 206 with a Content-Range header. The file handle lives
// exactly as long as the response body write.
func (h *Handlers) Stream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		_, path, err := h.assets.Resolve(id)
		if err != nil {
			status, message := mapError(err)
			writeError(w, status, message, err)
			return
		}

		file, err := os.Open(path)
		if err != nil {
			logger.Error.Printf("open %s: %v", path, err)
			writeError(w, http.StatusInternalServerError, "Failed to open media file", err)
			return
		}
		defer file.Close() //nolint:errcheck

		info, err := file.Stat()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to stat media file", err)
			return
		}
		fileLength := info.Size()

		w.Header().Set("Accept-Ranges", "bytes")
		w.Header().Set("Content-Type", domain.CanonicalMIMEType)

		rangeHeader := r.Header.Get("Range")
		if rangeHeader == "" {
			w.Header().Set("Content-Length", fmt.Sprintf("%d", fileLength))
			w.WriteHeader(http.StatusOK)
			if _, err := io.Copy(w, file); err != nil {
				// Client disconnects surface here; nothing to send back.
				logger.Debug.Printf("stream %s aborted: %v", id, err)
			}
			return
		}

		br, err := parseRange(rangeHeader, fileLength)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid range", err)
			return
		}

		if _, err := file.Seek(br.Start, io.SeekStart); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to seek media file", err)
			return
		}

		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", br.Start, br.End, fileLength))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", br.Length()))
		w.WriteHeader(http.StatusPartialContent)
		if _, err := io.CopyN(w, file, br.Length()); err != nil {
			logger.Debug.Printf("partial stream %s aborted: %v", id, err)
		}
	}
}

// mapError translates the domain error taxonomy into HTTP status codes.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest, "Invalid file type. Only MP4, AVI, and MOV files are allowed."
	case errors.Is(err, domain.ErrInvalidRange):
		return http.StatusBadRequest, "Invalid range"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Video not found"
	case errors.Is(err, domain.ErrBusy):
		return http.StatusServiceUnavailable, "Server is busy transcoding, try again later"
	case errors.Is(err, domain.ErrStorageWrite), errors.Is(err, domain.ErrTranscode), errors.Is(err, domain.ErrThumbnail):
		return http.StatusInternalServerError, "Failed to process video"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]any{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	writeJSON(w, status, body)
}
