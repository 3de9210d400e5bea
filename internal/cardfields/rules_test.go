package cardfields

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRules_AppendsToDefaults(t *testing.T) {
	rules, err := ParseRules([]byte(`
text_corrections:
  - from: "Bharath"
    to: "Bharat"
cities: ["surat"]
generic_domains: ["zoho.com"]
`))
	require.NoError(t, err)

	def := DefaultRules()
	assert.Len(t, rules.TextCorrections, len(def.TextCorrections)+1)
	assert.Equal(t, def.Cities, rules.Cities[:len(def.Cities)])
	assert.Equal(t, "surat", rules.Cities[len(rules.Cities)-1])

	e := NewEngine(rules)
	assert.Equal(t, "Surat", e.ExtractCity("Ring Road, surat"))
	assert.Equal(t, "Bharat Electronics", e.NormalizeText("Bharath Electronics"))
	assert.Equal(t, "ops@acme.in", e.ExtractEmail("me@zoho.com ops@acme.in"))
}

func TestParseRules_RejectsEmptyPattern(t *testing.T) {
	_, err := ParseRules([]byte("email_domain_fixes:\n  - from: \"\"\n    to: x\n"))
	assert.Error(t, err)

	_, err = ParseRules([]byte("cities: {"))
	assert.Error(t, err)
}

func TestLoadRules(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("company_keywords: [\"associates\"]\n"), 0o600))
	rules, err = LoadRules(path)
	require.NoError(t, err)
	assert.True(t, NewEngine(rules).LooksLikeCompany("Shah Associates"))

	_, err = LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEngine_RulesAreCopied(t *testing.T) {
	rules := DefaultRules()
	e := NewEngine(rules)
	rules.Cities[0] = "changed"
	assert.Equal(t, "delhi", e.Rules().Cities[0])
}
