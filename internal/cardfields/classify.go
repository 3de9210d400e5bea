package cardfields

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxCandidateLines bounds how deep into the card the classifier looks; names and company
// banners sit near the top of the printed layout.
const maxCandidateLines = 18

var (
	reLongDigits = regexp.MustCompile(`\d{6,}`)
	reAlphaRun   = regexp.MustCompile(`[A-Za-z]+`)
)

// LooksLikeCompany reports whether line reads as an organization name under the default tables.
func LooksLikeCompany(line string) bool { return defaultEngine.LooksLikeCompany(line) }

// LooksLikeCompany is true for lines holding an organization keyword, or for all-caps lines
// of at least two words and eight characters.
func (e *Engine) LooksLikeCompany(line string) bool {
	if containsAny(strings.ToLower(line), e.rules.CompanyKeywords) {
		return true
	}
	return len(strings.Fields(line)) >= 2 &&
		upper(line) == line &&
		utf8.RuneCountInString(line) >= 8
}

// LooksLikeName reports whether line reads as a personal name under the default tables.
func LooksLikeName(line string) bool { return defaultEngine.LooksLikeName(line) }

func (e *Engine) LooksLikeName(line string) bool {
	if utf8.RuneCountInString(line) < 3 {
		return false
	}
	if strings.IndexFunc(line, unicode.IsDigit) >= 0 {
		return false
	}
	low := strings.ToLower(line)
	if isContactDetail(line, low) {
		return false
	}
	if e.LooksLikeCompany(line) {
		return false
	}
	if containsAny(low, e.rules.NameRejectKeywords) {
		return false
	}

	parts := reAlphaRun.FindAllString(line, -1)
	if len(parts) < 1 {
		return false
	}
	// initials and hyphenated surnames
	if strings.ContainsAny(line, ".-") && len(parts) >= 2 {
		return true
	}
	return len(parts) >= 2 && len(parts) <= 4
}

// ExtractNameAndCompany classifies the top candidate lines into a person name (title-cased)
// and a company (upper-cased). Company and name are found by two independent scans; a line
// that looks like a company is never accepted as a name.
func ExtractNameAndCompany(lines []string) (name, company string) {
	return defaultEngine.ExtractNameAndCompany(lines)
}

func (e *Engine) ExtractNameAndCompany(lines []string) (name, company string) {
	top := candidateLines(lines)

	for _, ln := range top {
		if e.LooksLikeCompany(ln) {
			company = upper(strings.TrimSpace(ln))
			break
		}
	}

	for _, ln := range top {
		if e.LooksLikeName(ln) {
			name = titleCase(strings.TrimSpace(ln))
			break
		}
	}

	if company == "" {
		company = fallbackCompany(top, name)
	}
	return name, company
}

// candidateLines drops contact-detail lines and digit-heavy lines, keeping at most
// maxCandidateLines survivors in their original order.
func candidateLines(lines []string) []string {
	out := make([]string, 0, maxCandidateLines)
	for _, ln := range lines {
		ln = NormalizeLine(ln)
		if ln == "" {
			continue
		}
		if isContactDetail(ln, strings.ToLower(ln)) {
			continue
		}
		if reLongDigits.MatchString(ln) {
			continue
		}
		out = append(out, ln)
		if len(out) == maxCandidateLines {
			break
		}
	}
	return out
}

// fallbackCompany picks the first all-caps line of four or more characters that is not part
// of the chosen name. This is a last-resort heuristic with an unmeasured false-positive rate.
func fallbackCompany(top []string, name string) string {
	lowName := strings.ToLower(name)
	for _, ln := range top {
		if upper(ln) != ln || utf8.RuneCountInString(ln) < 4 {
			continue
		}
		if name != "" && strings.Contains(lowName, strings.ToLower(ln)) {
			continue
		}
		return upper(ln)
	}
	return ""
}

func isContactDetail(line, low string) bool {
	return strings.Contains(line, "@") ||
		strings.Contains(low, "www") ||
		strings.Contains(low, ".com") ||
		strings.Contains(low, ".in")
}
