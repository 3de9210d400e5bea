package extract

import (
	"context"
	"time"

	"github.com/joseph-ayodele/visiting-cards/internal/cardfields"
)

// TextExtractor is Stage 1: card image -> raw text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	SourceType string // "IMAGE" | "TEXT"
	Method     string // "image-ocr" | "heic-ocr"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

// FieldExtractor is Stage 2: raw text -> contact fields.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string) (cardfields.ContactFields, error)
}
