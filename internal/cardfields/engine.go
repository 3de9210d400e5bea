// Package cardfields recovers contact fields (name, company, phone, email, website, city)
// from the linearized OCR text of a printed business card.
//
// Every extractor is a total function: unmatched input yields the field's not-found
// sentinel, never an error. Extraction is deterministic and holds no mutable state, so an
// Engine may be shared freely between goroutines.
package cardfields

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/visiting-cards/constants"
	"github.com/joseph-ayodele/visiting-cards/internal/common"
)

// ContactFields is the engine's output record. All six keys are always present; Website uses
// constants.WebsiteNotFound when nothing was found, the other fields use "".
type ContactFields struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
	City    string `json:"city"`
}

// Empty reports whether no field was recovered.
func (c ContactFields) Empty() bool {
	return c.Name == "" && c.Company == "" && c.Phone == "" && c.Email == "" &&
		c.City == "" && (c.Website == "" || c.Website == constants.WebsiteNotFound)
}

// Engine runs the extractors against one immutable set of rule tables.
type Engine struct {
	rules Rules
}

// NewEngine copies rules into a new Engine.
func NewEngine(rules Rules) *Engine {
	return &Engine{rules: Rules{}.Merge(rules)}
}

// Rules returns a copy of the engine's tables.
func (e *Engine) Rules() Rules {
	return Rules{}.Merge(e.rules)
}

var defaultEngine = NewEngine(DefaultRules())

// Extract runs the whole pipeline with the built-in rule tables.
func Extract(text string) ContactFields { return defaultEngine.Extract(text) }

// ExtractValue is Extract for callers holding an untyped value (decoded JSON, form values).
// Anything other than a string or byte slice is a usage error wrapping common.ErrInvalidInput.
func ExtractValue(v any) (ContactFields, error) { return defaultEngine.ExtractValue(v) }

// Extract normalizes text, then runs each field extractor over it. The email result feeds the
// website extractor; the cleaned line list feeds the name/company classifier.
func (e *Engine) Extract(text string) ContactFields {
	text = e.NormalizeText(text)
	lines := SplitLines(text)

	email := e.ExtractEmail(text)
	name, company := e.ExtractNameAndCompany(lines)

	return ContactFields{
		Name:    name,
		Company: company,
		Phone:   ExtractPhone(text),
		Email:   email,
		Website: e.ExtractWebsite(text, email),
		City:    e.ExtractCity(text),
	}
}

func (e *Engine) ExtractValue(v any) (ContactFields, error) {
	switch t := v.(type) {
	case string:
		return e.Extract(t), nil
	case []byte:
		return e.Extract(string(t)), nil
	default:
		return ContactFields{Website: constants.WebsiteNotFound},
			fmt.Errorf("extract: text must be a string, got %T: %w", v, common.ErrInvalidInput)
	}
}

// SplitLines breaks raw text on line breaks and returns the non-empty normalized lines in order.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, ln := range raw {
		if ln = NormalizeLine(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}
