package cardfields

import (
	"regexp"
	"strings"
)

// Phone patterns in precedence order. The first rule that matches anywhere wins.
var (
	reMobileCC55   = regexp.MustCompile(`\+91[\s\-]?\d{5}[\s\-]?\d{5}`)
	reMobileCC10   = regexp.MustCompile(`\+91[\s\-]?\d{10}`)
	reMobileBare   = wordBounded(`[6-9]\d{9}`)
	reLandline     = wordBounded(`0\d{2,4}[-\s]?\d{6,8}`)
	reSeparators   = regexp.MustCompile(`[\s\-]`)
	phoneBlankouts = strings.NewReplacer(",", " ", "|", " ", "I", " ", "l", " ")
)

// ExtractPhone returns the most specific phone number in text, or "".
//
// Precedence: +91 with 5+5 grouping, +91 with 10 digits, bare Indian mobile (6-9 prefix),
// landline with a 0-prefixed STD code. Separators are stripped from every rule except the
// bare mobile, which is returned as matched.
func ExtractPhone(text string) string {
	text = strings.ReplaceAll(text, "O", "0")
	t := phoneBlankouts.Replace(text)

	if m := reMobileCC55.FindString(t); m != "" {
		return reSeparators.ReplaceAllString(m, "")
	}
	if m := reMobileCC10.FindString(t); m != "" {
		return reSeparators.ReplaceAllString(m, "")
	}
	if m := reMobileBare.FindStringSubmatch(t); m != nil {
		return m[1]
	}
	if m := reLandline.FindStringSubmatch(t); m != nil {
		return reSeparators.ReplaceAllString(m[1], "")
	}
	return ""
}
