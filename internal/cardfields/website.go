package cardfields

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/visiting-cards/constants"
)

// Website candidate patterns, applied in order over lower-cased text.
var websitePatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?://[a-z0-9\-\.]+\.[a-z]{2,}(/[a-z0-9\-/]*)?`),
	regexp.MustCompile(`www\.[a-z0-9\-]+\.[a-z]{2,}(/[a-z0-9\-/]*)?`),
	regexp.MustCompile(`[a-z0-9\-]{2,}\.(com|in|net|org|co\.in|co|info|biz)`),
}

var websiteSpacing = strings.NewReplacer(
	"www ", "www.",
	"http ://", "http://",
	"https ://", "https://",
)

// ExtractWebsite returns the card's website, or constants.WebsiteNotFound.
func ExtractWebsite(text, email string) string { return defaultEngine.ExtractWebsite(text, email) }

// ExtractWebsite collects URL-shaped candidates, drops email fragments and webmail domains,
// dedupes them in first-seen order, then drops any candidate carrying the email's domain.
// The first survivor is returned without its scheme.
func (e *Engine) ExtractWebsite(text, email string) string {
	found := e.websiteCandidates(text)
	if found.Len() == 0 {
		return constants.WebsiteNotFound
	}

	candidates := found.Items()
	if strings.Contains(email, "@") {
		candidates = withoutDomain(candidates, strings.TrimSpace(emailDomain(email)))
	}
	if len(candidates) == 0 {
		return constants.WebsiteNotFound
	}

	site := candidates[0]
	site = strings.ReplaceAll(site, "https://", "")
	site = strings.ReplaceAll(site, "http://", "")
	return site
}

func (e *Engine) websiteCandidates(text string) *orderedSet {
	t := websiteSpacing.Replace(strings.ToLower(text))

	found := newOrderedSet()
	for _, re := range websitePatterns {
		for _, m := range re.FindAllString(t, -1) {
			site := strings.Join(strings.Fields(m), "")
			if strings.Contains(site, "@") || e.isGenericDomain(site) {
				continue
			}
			found.Add(site)
		}
	}
	return found
}

func withoutDomain(sites []string, domain string) []string {
	out := make([]string, 0, len(sites))
	for _, s := range sites {
		if !strings.Contains(s, domain) {
			out = append(out, s)
		}
	}
	return out
}

// orderedSet keeps the first occurrence of each value in insertion order.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

// Add appends v unless it is already present and reports whether it was added.
func (s *orderedSet) Add(v string) bool {
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *orderedSet) Len() int { return len(s.items) }

func (s *orderedSet) Items() []string {
	return append([]string(nil), s.items...)
}
