package extract

import (
	"regexp"
	"strings"
)

var (
	excessiveNewlines = regexp.MustCompile(`\n{3,}`)
	trailingSpaces    = regexp.MustCompile(`[ \t]+\n`)
)

// NormalizeText makes extracted text safe and comparable: valid UTF-8 only,
// unified line endings, no control characters besides newline and tab, and
// no runs of blank lines longer than one.
func NormalizeText(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	s = trailingSpaces.ReplaceAllString(s, "\n")
	s = excessiveNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
