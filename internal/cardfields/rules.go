package cardfields

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Replacement is one literal substring rewrite. Tables of replacements are applied in order.
type Replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Rules holds every lookup table the engine consults. Tables are plain data so they can be
// audited and extended without touching extractor logic.
type Rules struct {
	TextCorrections    []Replacement `yaml:"text_corrections"`
	EmailDomainFixes   []Replacement `yaml:"email_domain_fixes"`
	GenericDomains     []string      `yaml:"generic_domains"`
	Cities             []string      `yaml:"cities"`
	CompanyKeywords    []string      `yaml:"company_keywords"`
	NameRejectKeywords []string      `yaml:"name_reject_keywords"`
}

// DefaultRules returns a fresh copy of the built-in tables.
func DefaultRules() Rules {
	return Rules{
		TextCorrections: []Replacement{
			{From: "Indio", To: "India"},
			{From: "indio", To: "india"},
			{From: "lndia", To: "India"},
		},
		EmailDomainFixes: []Replacement{
			{From: "@gmat.on", To: "@gmail.com"},
			{From: "@gma1l.com", To: "@gmail.com"},
			{From: "gmailcom", To: "gmail.com"},
		},
		GenericDomains: []string{
			"gmail.com", "yahoo.com", "outlook.com", "hotmail.com", "rediffmail.com",
		},
		Cities: []string{
			"delhi", "new delhi", "chennai", "mumbai", "hyderabad", "pune",
			"kochi", "bengaluru", "bangalore", "kolkata", "ahmedabad",
			"jaipur", "lucknow", "indore", "bhopal", "nagpur", "mysuru", "mysore",
		},
		CompanyKeywords: []string{
			"limited", "ltd", "pvt", "private",
			"technology", "technologies",
			"corporation", "industries", "industry",
			"solutions", "systems", "group", "services",
			"enterprises", "electronics", "electro",
		},
		NameRejectKeywords: []string{
			"manager", "general", "engineer", "director", "sales", "marketing",
			"hr", "solution", "solutions", "corporation", "industrial",
			"technology", "limited", "ltd", "pvt", "private",
		},
	}
}

// Merge returns r with every entry of extra appended after r's own entries.
func (r Rules) Merge(extra Rules) Rules {
	return Rules{
		TextCorrections:    concat(r.TextCorrections, extra.TextCorrections),
		EmailDomainFixes:   concat(r.EmailDomainFixes, extra.EmailDomainFixes),
		GenericDomains:     concat(r.GenericDomains, extra.GenericDomains),
		Cities:             concat(r.Cities, extra.Cities),
		CompanyKeywords:    concat(r.CompanyKeywords, extra.CompanyKeywords),
		NameRejectKeywords: concat(r.NameRejectKeywords, extra.NameRejectKeywords),
	}
}

// LoadRules reads a YAML rules file and appends its entries to the default tables.
// An empty path yields DefaultRules.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules: %w", err)
	}
	return ParseRules(b)
}

// ParseRules decodes YAML rule tables and appends them to the defaults.
func ParseRules(b []byte) (Rules, error) {
	var extra Rules
	if err := yaml.Unmarshal(b, &extra); err != nil {
		return Rules{}, fmt.Errorf("decode rules: %w", err)
	}
	for i, rp := range append(extra.TextCorrections, extra.EmailDomainFixes...) {
		if rp.From == "" {
			return Rules{}, fmt.Errorf("decode rules: replacement %d has empty 'from'", i)
		}
	}
	return DefaultRules().Merge(extra), nil
}

func concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func applyReplacements(s string, table []Replacement) string {
	for _, rp := range table {
		s = strings.ReplaceAll(s, rp.From, rp.To)
	}
	return s
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
