package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/visiting-cards/constants"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	TessdataDir   string
	HeicConverter string // "magick" | "heif-convert" | "sips"

	EnableTSVConfidence bool
	PSM                 int // 11 (sparse text) suits card layouts
	OEM                 int // 1 = LSTM; leave 0 to use default

	// Timeout bounds a single file's recognition; 0 means no limit.
	Timeout time.Duration
}

type ExtractionResult struct {
	Text       string
	SourceType string // constants.IMAGE
	Method     string // "image-ocr" | "heic-ocr"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithRunner replaces the exec-based command runner.
func WithRunner(r Runner) Option {
	return func(e *Extractor) {
		if r != nil {
			e.runner = r
		}
	}
}

func NewExtractor(cfg Config, logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.HeicConverter == "" {
		cfg.HeicConverter = "magick"
	}
	e := &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract recognizes the text on a card image. HEIC/HEIF input is converted to PNG first.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("starting ocr extraction", "path", path, "ext", ext)
	if !constants.IsAllowedExt(ext) {
		e.logger.Error("unsupported ocr extension", "extension", ext)
		return ExtractionResult{}, fmt.Errorf("unsupported extension: %q", ext)
	}

	method := "image-ocr"
	var warns []string
	if constants.IsHEICExt(ext) {
		out, w, cleanup, err := convertHEICtoPNG(ctx, e.runner, e.cfg.HeicConverter, path)
		if cleanup != nil {
			defer cleanup()
		}
		warns = append(warns, w...)
		if err != nil {
			e.logger.Error("heic conversion failed", "path", path, "error", err)
			return ExtractionResult{SourceType: constants.IMAGE, Warnings: warns}, err
		}
		path = out
		method = "heic-ocr"
	}

	res, err := e.extractImage(ctx, path)
	res.Method = method
	res.Duration = time.Since(start)
	res.Warnings = append(res.Warnings, warns...)
	if err == nil {
		e.logger.Debug("ocr extraction done", "chars", len(res.Text), "confidence", res.Confidence, "duration_ms", res.Duration.Milliseconds())
	}
	return res, err
}
