package cardfields

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/visiting-cards/constants"
	"github.com/joseph-ayodele/visiting-cards/internal/common"
)

const sampleCard = `ACME TECH SOLUTIONS PVT LTD
Rahul   Sharma
Sales Manager
+91 98765 43210
rahul.sharma@gmail.com
www.acmetech.com
12 MG Road, Pune - 411001
Indio`

func TestExtract_SampleCard(t *testing.T) {
	got := Extract(sampleCard)
	assert.Equal(t, ContactFields{
		Name:    "Rahul Sharma",
		Company: "ACME TECH SOLUTIONS PVT LTD",
		Phone:   "+919876543210",
		Email:   "rahul.sharma@gmail.com",
		Website: "www.acmetech.com",
		City:    "Pune",
	}, got)
}

func TestExtract_Deterministic(t *testing.T) {
	for _, in := range []string{sampleCard, "", "sales@acme.com\nvisit acme.com today"} {
		assert.Equal(t, Extract(in), Extract(in))
	}
}

func TestExtract_Total(t *testing.T) {
	inputs := []string{
		"",
		"   \t\n\n  ",
		"\x00\xff\xfe\x01",
		strings.Repeat("@", 500),
		strings.Repeat("9", 4096),
		"\xff@\xfe.com\n+91\n...",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			got := Extract(in)
			assert.NotEmpty(t, got.Website)
		}, "input %q", in)
	}
}

func TestExtract_Sentinels(t *testing.T) {
	got := Extract("")
	assert.Equal(t, ContactFields{Website: constants.WebsiteNotFound}, got)
	assert.True(t, got.Empty())
}

func TestExtractValue(t *testing.T) {
	got, err := ExtractValue("Call 9876543210")
	require.NoError(t, err)
	assert.Equal(t, "9876543210", got.Phone)

	got, err = ExtractValue([]byte("Call 9876543210"))
	require.NoError(t, err)
	assert.Equal(t, "9876543210", got.Phone)

	got, err = ExtractValue(42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
	assert.Equal(t, constants.WebsiteNotFound, got.Website)
}

func TestNormalizeLine_Idempotent(t *testing.T) {
	for _, s := range []string{"", "  a  b ", "\tRahul\t\tSharma\r", "x  y", "\xff  \xfe"} {
		once := NormalizeLine(s)
		assert.Equal(t, once, NormalizeLine(once), "input %q", s)
	}
	assert.Equal(t, "a b", NormalizeLine("  a \t  b\n"))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "India India india", NormalizeText("lndia Indio indio"))
	assert.Equal(t, "Indiana", NormalizeText("Indiana"))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a b", "c"}, SplitLines(" a   b \r\n\n\t\nc"))
	assert.Empty(t, SplitLines("\n \n"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "New Delhi", titleCase("new delhi"))
	assert.Equal(t, "A.K. Sharma", titleCase("A.K. SHARMA"))
	assert.Equal(t, "Mary-Jane", titleCase("mary-jane"))
	assert.Equal(t, "Straße", titleCase("STRAßE"))
}

func TestUpperFullMapping(t *testing.T) {
	assert.Equal(t, "GROSSE STRASSE", upper("große straße"))
	assert.Equal(t, "MÜLLER", upper("Müller"))
	assert.False(t, LooksLikeCompany("MÜLLER STRAßE"))
	assert.True(t, LooksLikeCompany("MÜLLER STRASSE"))
}
