package cardfields

import (
	"regexp"
	"strings"
)

var reEmail = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// FixEmail repairs one email candidate using the default domain table.
func FixEmail(email string) string { return defaultEngine.FixEmail(email) }

// FixEmail strips spaces and stray separators, collapses "..", rewrites known corrupted
// domains, and forces any "@gmail." address onto gmail.com.
func (e *Engine) FixEmail(email string) string {
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	email = strings.ReplaceAll(email, ";", "")
	email = strings.ReplaceAll(email, ",", "")
	email = strings.ReplaceAll(email, "..", ".")

	email = applyReplacements(email, e.rules.EmailDomainFixes)

	if strings.Contains(email, "@gmail.") && !strings.HasSuffix(email, ".com") {
		local, _, _ := strings.Cut(email, "@gmail")
		email = local + "@gmail.com"
	}
	return email
}

// ExtractEmail returns the best email address in text, or "".
func ExtractEmail(text string) string { return defaultEngine.ExtractEmail(text) }

// ExtractEmail repairs every candidate and prefers the first whose domain is not a generic
// webmail provider. With only generic candidates the first one is returned.
func (e *Engine) ExtractEmail(text string) string {
	matches := reEmail.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}

	fixed := make([]string, len(matches))
	for i, m := range matches {
		fixed[i] = e.FixEmail(m)
	}

	for _, em := range fixed {
		if !e.isGenericDomain(emailDomain(em)) {
			return em
		}
	}
	return fixed[0]
}

func (e *Engine) isGenericDomain(domain string) bool {
	for _, g := range e.rules.GenericDomains {
		if domain == g {
			return true
		}
	}
	return false
}

// emailDomain returns the lower-cased text after the last "@".
func emailDomain(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 {
		email = email[i+1:]
	}
	return strings.ToLower(email)
}
