package cardfields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"john.doe@gmat.on", "john.doe@gmail.com"},
		{"x@gma1l.com", "x@gmail.com"},
		{"priya@gmailcom.in", "priya@gmail.com"},
		{"a..b@acme.com", "a.b@acme.com"},
		{" raj @acme.com; ", "raj@acme.com"},
		{"raj@gmail.co", "raj@gmail.com"},
		{"contact@acmecorp.com", "contact@acmecorp.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FixEmail(tt.in), "FixEmail(%q)", tt.in)
	}
}

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"repairs corrupted gmail", "Mail: john.doe@gmat.on", "john.doe@gmail.com"},
		{"prefers corporate domain", "info@gmail.com\ncontact@acmecorp.com", "contact@acmecorp.com"},
		{"first generic when all generic", "a@gmail.com b@yahoo.com", "a@gmail.com"},
		{"generic check ignores case", "A@GMAIL.COM ops@acme.in", "ops@acme.in"},
		{"none", "no address here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEmail(tt.in))
		})
	}
}
