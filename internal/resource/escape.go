// SPDX-License-Identifier: MPL-2.0

package resource

import (
	"strings"
	"unicode"
)

// MaxSegmentLength is the longest string literal, in characters, written
// for one resource string entry. Rez rejects longer literals.
const MaxSegmentLength = 1000

var (
	escaper   = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\x00", "")
	unescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`)
)

// Escape makes s safe inside a double-quoted Rez string: backslashes are
// doubled, double quotes are backslash-escaped and NUL bytes are dropped.
// The replacements happen in a single pass, so backslashes introduced for
// quotes are never escaped again.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses Escape. NUL bytes removed by Escape are not restored.
func Unescape(s string) string {
	return unescaper.Replace(s)
}

// trimLine removes the line terminator and any trailing whitespace.
func trimLine(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// Chunk splits an escaped string into segments of at most max characters.
// A backslash and the character it escapes always land in the same segment,
// so a segment never ends in a dangling escape; such a segment is one
// character shorter than max. An empty string yields no segments.
func Chunk(escaped string, max int) []string {
	if max < 2 {
		max = 2
	}
	runes := []rune(escaped)
	if len(runes) == 0 {
		return nil
	}

	segments := make([]string, 0, (len(runes)+max-1)/max)
	start, n := 0, 0
	for i := 0; i < len(runes); i++ {
		width := 1
		if runes[i] == '\\' && i+1 < len(runes) {
			width = 2
		}
		if n+width > max {
			segments = append(segments, string(runes[start:i]))
			start, n = i, 0
		}
		n += width
		i += width - 1
	}
	segments = append(segments, string(runes[start:]))
	return segments
}
