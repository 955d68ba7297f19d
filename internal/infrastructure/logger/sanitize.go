package logger

import (
	"fmt"
	"strings"
)

// maxLoggedLen caps user-controlled strings (upload filenames, titles) in
// log output so a hostile multipart field cannot flood the log.
const maxLoggedLen = 256

// SanitizeForLog escapes control characters in a user-controlled string
// before it reaches the log. Newlines and carriage returns could forge log
// entries, null bytes truncate them, and ANSI escapes manipulate terminals;
// everything below 32 and DEL are emitted as hex escapes. Unicode is
// preserved. Strings longer than maxLoggedLen are truncated with an
// ellipsis marker.
func SanitizeForLog(s string) string {
	if len(s) > maxLoggedLen {
		s = s[:maxLoggedLen] + "..."
	}

	var result strings.Builder
	result.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\n':
			result.WriteString("\\n")
		case '\r':
			result.WriteString("\\r")
		case '\t':
			result.WriteString("\\t")
		case '\x00':
			result.WriteString("\\x00")
		default:
			if r < 32 || r == 127 || r == '\x1b' {
				result.WriteString(fmt.Sprintf("\\x%02x", r))
			} else {
				result.WriteRune(r)
			}
		}
	}
	return result.String()
}
