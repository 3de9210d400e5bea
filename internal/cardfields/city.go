package cardfields

import "strings"

// A city name conventionally sits right before the 6-digit PIN code on Indian addresses.
var reCityPIN = wordBounded(`([A-Za-z]{3,20})\s*[-,]?\s*\d{6}`)

// ExtractCity returns the title-cased city, or "".
func ExtractCity(text string) string { return defaultEngine.ExtractCity(text) }

// ExtractCity prefers the word preceding a PIN code and falls back to the first gazetteer
// entry found in the lower-cased text.
func (e *Engine) ExtractCity(text string) string {
	if m := reCityPIN.FindStringSubmatch(text); m != nil {
		return titleCase(strings.TrimSpace(m[2]))
	}

	low := strings.ToLower(text)
	for _, c := range e.rules.Cities {
		if c = strings.ToLower(c); c != "" && strings.Contains(low, c) {
			return titleCase(c)
		}
	}
	return ""
}
