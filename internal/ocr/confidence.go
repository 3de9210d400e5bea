package ocr

import (
	"regexp"
	"strings"
)

var (
	reEmailish = regexp.MustCompile(`[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	rePhoneish = regexp.MustCompile(`(\+?\d[\d\s\-]{8,}\d)`)
	reURLish   = regexp.MustCompile(`\bwww\.|https?://|\b[a-z0-9\-]{2,}\.(com|in|net|org|co)\b`)
)

// heuristicConfidence scores text by the business-card artifacts it contains.
func heuristicConfidence(txt string) float32 {
	txtL := strings.ToLower(txt)
	score := float32(0.2)
	if reEmailish.MatchString(txtL) {
		score += 0.25
	}
	if rePhoneish.MatchString(txtL) {
		score += 0.25
	}
	if reURLish.MatchString(txtL) {
		score += 0.15
	}
	if strings.Count(strings.TrimSpace(txt), "\n") >= 2 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
