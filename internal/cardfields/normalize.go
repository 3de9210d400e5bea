package cardfields

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// wordBounded compiles pattern as group 1, bounded on both sides by text edges or by a rune
// that is not a Unicode letter, digit or underscore.
func wordBounded(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(` + pattern + `)(?:$|[^\p{L}\p{N}_])`)
}

// NormalizeLine trims a line and collapses every whitespace run to a single space.
func NormalizeLine(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// NormalizeText rewrites the known recurring OCR misreads listed in the default tables.
func NormalizeText(text string) string { return defaultEngine.NormalizeText(text) }

func (e *Engine) NormalizeText(text string) string {
	return applyReplacements(text, e.rules.TextCorrections)
}

// titleCase title-cases the first letter of every letter run and lower-cases the rest, so
// initials such as "a.k." become "A.K.". Mappings are the full Unicode ones ("ß" -> "Ss").
func titleCase(s string) string {
	title := cases.Title(language.Und)
	lower := cases.Lower(language.Und)
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			prevLetter = false
			b.WriteRune(r)
			continue
		}
		if prevLetter {
			b.WriteString(lower.String(string(r)))
		} else {
			b.WriteString(title.String(string(r)))
		}
		prevLetter = true
	}
	return b.String()
}

// upper applies the full Unicode upper-case mapping ("ß" -> "SS").
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}
