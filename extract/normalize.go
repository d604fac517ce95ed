package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	pageStartRe = regexp.MustCompile(`=== PAGE \d+ OF \d+ ===\n?`)
	pageEndRe   = regexp.MustCompile(`=== END PAGE \d+ ===\n?`)
)

// Normalize replaces page markers with a space and collapses every run of
// whitespace to a single ASCII space. The result is not trimmed.
func Normalize(raw string) string {
	s := pageStartRe.ReplaceAllLiteralString(raw, " ")
	s = pageEndRe.ReplaceAllLiteralString(s, " ")

	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if isSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// isSpace reports whether r is whitespace. The ASCII information separators
// count as whitespace so that document text split on them still lines up.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}
