// Package disk streams upload bytes to the local media directory.
package disk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmllr/vidvault/internal/domain"
	"github.com/jmllr/vidvault/internal/infrastructure/logger"
	"github.com/jmllr/vidvault/internal/port"
)

// copyBufSize bounds the memory used per in-flight upload copy.
const copyBufSize = 256 * 1024

type Writer struct{}

func NewWriter() port.BlobWriter {
	return &Writer{}
}

// Write copies src into dstPath using a bounded buffer, creating the parent
// directory if absent. On any error the partial file is removed so no
// record can ever reference a truncated artifact.
func (w *Writer) Write(dstPath string, src io.Reader) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return 0, fmt.Errorf("%w: create storage directory: %v", domain.ErrStorageWrite, err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return 0, fmt.Errorf("%w: create %s: %v", domain.ErrStorageWrite, filepath.Base(dstPath), err)
	}

	written, err := io.CopyBuffer(dst, src, make([]byte, copyBufSize))
	if err != nil {
		_ = dst.Close()
		w.discard(dstPath)
		return written, fmt.Errorf("%w: copy: %v", domain.ErrStorageWrite, err)
	}

	if err := dst.Close(); err != nil {
		w.discard(dstPath)
		return written, fmt.Errorf("%w: close: %v", domain.ErrStorageWrite, err)
	}

	return written, nil
}

func (w *Writer) discard(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Error.Printf("failed to remove partial file %s: %v", path, err)
	}
}

var _ port.BlobWriter = (*Writer)(nil)
