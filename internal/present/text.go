package present

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// ansiRE matches ANSI escape sequences:
//   - CSI sequences: ESC [ ... final_byte
//   - OSC sequences: ESC ] ... (ST | BEL)
//   - Charset designation: ESC ( B, ESC ) 0, ...
var ansiRE = regexp.MustCompile(`\x1b(?:` +
	`\[[0-9;]*[A-Za-z]` +
	`|` +
	`\].*?(?:\x1b\\|\x07)` +
	`|` +
	`[()][A-B0-2]` +
	`)`)

// Clean makes provider text safe to draw in a terminal: escape sequences are
// removed, invalid UTF-8 is replaced and remaining control characters are
// dropped.
func Clean(s string) string {
	s = validateUTF8(ansiRE.ReplaceAllString(s, ""))
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			if r == '\t' {
				return ' '
			}
			return -1
		}
		return r
	}, s)
}

// validateUTF8 replaces invalid UTF-8 byte sequences with U+FFFD.
func validateUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteRune(utf8.RuneError)
			i++
		} else {
			b.WriteRune(r)
			i += size
		}
	}
	return b.String()
}

// Truncate fits s into maxWidth display columns, ending with an ellipsis
// when something was cut. Wide (CJK, emoji) runes count as two columns.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	const ellipsis = "…"
	if maxWidth == 1 {
		return ellipsis
	}
	return truncateWidth(s, maxWidth-1) + ellipsis
}

// truncateWidth returns the longest prefix of s whose display width does
// not exceed maxWidth.
func truncateWidth(s string, maxWidth int) string {
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxWidth {
			return s[:i]
		}
		w += rw
	}
	return s
}
