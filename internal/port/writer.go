package port

import "io"

// BlobWriter streams an incoming byte source to durable storage. On any
// failure no partial file is left behind.
type BlobWriter interface {
	Write(dstPath string, src io.Reader) (written int64, err error)
}
