package ocr

import (
	"regexp"
	"strings"
)

// reBoxNoise matches lines made only of rule, box-drawing or underline glyphs that tesseract
// emits for card borders.
var reBoxNoise = regexp.MustCompile(`(?m)^[ \t|_\-=~—–─━│┃┌┐└┘•·.]{3,}$`)

// Normalize unifies line endings, drops border noise lines and trailing whitespace. Line
// structure is kept because field extraction works line by line.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\f", "\n")
	s = reBoxNoise.ReplaceAllString(s, "")

	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimRight(ln, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
