package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxQueryLen is the maximum length of a query string in bytes.
const maxQueryLen = 256

// sanitizeQuery strips control characters and validates the query string.
func sanitizeQuery(q string) (string, error) {
	if q == "" {
		return "", nil
	}

	// Reject newlines before stripping.
	if strings.ContainsAny(q, "\n\r") {
		return "", fmt.Errorf("query must not contain newlines")
	}

	// Strip control characters (0x00-0x1F, DEL) except tab.
	var b strings.Builder
	b.Grow(len(q))
	for _, r := range q {
		if (r <= 0x1F && r != '\t') || r == 0x7F {
			continue
		}
		b.WriteRune(r)
	}
	result := b.String()

	// Truncate to maxQueryLen bytes without splitting a rune.
	if len(result) > maxQueryLen {
		result = result[:maxQueryLen]
		for len(result) > 0 && !utf8.ValidString(result) {
			result = result[:len(result)-1]
		}
	}

	return result, nil
}
