package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmllr/vidvault/internal/domain"
)

// byteRange is an inclusive [Start, End] span within a file.
type byteRange struct {
	Start int64
	End   int64
}

func (r byteRange) Length() int64 {
	return r.End - r.Start + 1
}

// parseRange parses a single-range header of the form "bytes=<start>-<end>"
// where <end> is optional and defaults to fileLength-1. Multi-range
// requests ("bytes=0-99,200-299") and suffix ranges ("bytes=-500") are not
// supported; both are rejected as invalid, a documented limitation of this
// streamer. Out-of-bounds values (start >= fileLength, end >= fileLength,
// start > end) are invalid as well.
func parseRange(header string, fileLength int64) (byteRange, error) {
	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return byteRange{}, fmt.Errorf("%w: unsupported unit in %q", domain.ErrInvalidRange, header)
	}
	if strings.Contains(spec, ",") {
		return byteRange{}, fmt.Errorf("%w: multi-range requests are not supported", domain.ErrInvalidRange)
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return byteRange{}, fmt.Errorf("%w: malformed range %q", domain.ErrInvalidRange, header)
	}

	start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if err != nil || start < 0 {
		return byteRange{}, fmt.Errorf("%w: malformed range start %q", domain.ErrInvalidRange, startStr)
	}

	end := fileLength - 1
	if trimmed := strings.TrimSpace(endStr); trimmed != "" {
		end, err = strconv.ParseInt(trimmed, 10, 64)
		if err != nil || end < 0 {
			return byteRange{}, fmt.Errorf("%w: malformed range end %q", domain.ErrInvalidRange, endStr)
		}
	}

	if start >= fileLength || end >= fileLength || start > end {
		return byteRange{}, fmt.Errorf("%w: bytes %d-%d out of bounds for length %d", domain.ErrInvalidRange, start, end, fileLength)
	}

	return byteRange{Start: start, End: end}, nil
}
