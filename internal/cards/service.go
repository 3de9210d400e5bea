// Package cards holds the visiting-card use cases: scanning an uploaded image into contact
// fields and managing the stored card records.
package cards

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/visiting-cards/constants"
	"github.com/joseph-ayodele/visiting-cards/internal/cardfields"
	"github.com/joseph-ayodele/visiting-cards/internal/common"
	"github.com/joseph-ayodele/visiting-cards/internal/entity"
	"github.com/joseph-ayodele/visiting-cards/internal/extract"
	"github.com/joseph-ayodele/visiting-cards/internal/repository"
)

// Options tunes a Service. Zero values pick the defaults.
type Options struct {
	UploadDir      string
	CacheSize      int
	MaxUploadBytes int64
}

// ScanResult is the outcome of one card scan. Fields are suggestions for the user to review
// before saving.
type ScanResult struct {
	Fields      cardfields.ContactFields
	Text        string
	Method      string
	Confidence  float32
	ContentHash string
	Cached      bool
	Duration    time.Duration
}

// Service handles card business logic.
type Service struct {
	repo      repository.CardRepository
	ocr       extract.TextExtractor
	fields    extract.FieldExtractor
	uploadDir string
	maxBytes  int64
	cache     *lru.Cache[string, extract.TextExtractionResult]
	logger    *slog.Logger
}

// NewService creates a new card service. ocr may be nil when only text extraction and card
// management are needed.
func NewService(repo repository.CardRepository, ocr extract.TextExtractor, fields extract.FieldExtractor, opts Options, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if fields == nil {
		fields = extract.NewRulesAdapter(nil)
	}
	if opts.UploadDir == "" {
		opts.UploadDir = "./uploads"
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 256
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 20 << 20
	}
	cache, err := lru.New[string, extract.TextExtractionResult](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("ocr cache: %w", err)
	}
	return &Service{
		repo:      repo,
		ocr:       ocr,
		fields:    fields,
		uploadDir: opts.UploadDir,
		maxBytes:  opts.MaxUploadBytes,
		cache:     cache,
		logger:    logger,
	}, nil
}

// Scan stores an uploaded card image, recognizes its text and extracts the contact fields.
// Identical uploads reuse the cached recognition.
func (s *Service) Scan(ctx context.Context, filename string, r io.Reader) (*ScanResult, error) {
	start := time.Now()
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, common.InvalidArgumentError("No selected file")
	}
	ext := constants.NormalizeExt(filepath.Ext(filename))
	if !constants.IsAllowedExt(ext) {
		s.logger.Warn("rejected upload", "filename", filename, "ext", ext)
		return nil, common.InvalidArgumentErrorf("unsupported file type %q", ext)
	}
	if s.ocr == nil {
		return nil, status.Error(codes.Unavailable, "ocr is not configured")
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		s.logger.Error("failed to read upload", "filename", filename, "error", err)
		return nil, common.InvalidArgumentError("failed to read upload")
	}
	if len(data) == 0 {
		return nil, common.InvalidArgumentError("No image uploaded")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, common.InvalidArgumentErrorf("image exceeds %d bytes", s.maxBytes)
	}

	sum := sha256.Sum256(data)
	hashHex := hex.EncodeToString(sum[:])

	text, cached := s.cache.Get(hashHex)
	if !cached {
		path, err := s.storeUpload(hashHex, ext, data)
		if err != nil {
			s.logger.Error("failed to store upload", "filename", filename, "error", err)
			return nil, common.InternalError("failed to store upload")
		}
		text, err = s.ocr.Extract(ctx, path)
		if err != nil {
			s.logger.Error("cards.scan.ocr_failed", "filename", filename, "hash", hashHex, "error", err)
			return nil, common.InternalErrorf("OCR processing failed: %v", err)
		}
		s.cache.Add(hashHex, text)
	}

	fields, err := s.fields.ExtractFields(ctx, text.Text)
	if err != nil {
		return nil, status.FromContextError(err).Err()
	}

	res := &ScanResult{
		Fields:      fields,
		Text:        text.Text,
		Method:      text.Method,
		Confidence:  text.Confidence,
		ContentHash: hashHex,
		Cached:      cached,
		Duration:    time.Since(start),
	}
	s.logger.Info("cards.scan.ok",
		"filename", filename,
		"hash", hashHex,
		"cached", cached,
		"confidence", res.Confidence,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// storeUpload writes data under its content hash so repeated uploads share one file.
func (s *Service) storeUpload(hashHex, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.uploadDir, hashHex+"."+ext)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	tmp, err := os.CreateTemp(s.uploadDir, ".upload-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return path, os.Rename(tmp.Name(), path)
}

// ExtractText runs field extraction on already recognized text.
func (s *Service) ExtractText(ctx context.Context, text string) (cardfields.ContactFields, error) {
	fields, err := s.fields.ExtractFields(ctx, text)
	if err != nil {
		return fields, status.FromContextError(err).Err()
	}
	s.logger.Debug("cards.extract.ok", "chars", len(text))
	return fields, nil
}

// Save stores a reviewed card as active.
func (s *Service) Save(ctx context.Context, fields entity.CardFields) (*entity.Card, error) {
	fields = clean(fields)
	if err := validate(fields); err != nil {
		return nil, err
	}
	card, err := s.repo.Create(ctx, fields)
	if err != nil {
		s.logger.Error("failed to save card", "error", err)
		return nil, common.InternalError("failed to save card")
	}
	s.logger.Info("cards.save.ok", "id", card.ID)
	return card, nil
}

// List returns active cards matching search, newest first.
func (s *Service) List(ctx context.Context, search string) ([]*entity.Card, error) {
	cards, err := s.repo.List(ctx, repository.ListFilter{Search: search})
	if err != nil {
		s.logger.Error("failed to list cards", "search", search, "error", err)
		return nil, common.InternalError("failed to list cards")
	}
	return cards, nil
}

// ListDeleted returns soft-deleted cards, most recently deleted first.
func (s *Service) ListDeleted(ctx context.Context) ([]*entity.Card, error) {
	cards, err := s.repo.List(ctx, repository.ListFilter{Deleted: true})
	if err != nil {
		s.logger.Error("failed to list deleted cards", "error", err)
		return nil, common.InternalError("failed to list deleted cards")
	}
	return cards, nil
}

// Update replaces the contact fields of the card with the given id.
func (s *Service) Update(ctx context.Context, rawID string, fields entity.CardFields) (*entity.Card, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	fields = clean(fields)
	if err := validate(fields); err != nil {
		return nil, err
	}
	card, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, s.repoError("update", id, err)
	}
	s.logger.Info("cards.update.ok", "id", id)
	return card, nil
}

// Delete moves a card to the deleted records.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	return s.setDeleted(ctx, rawID, true)
}

// Restore moves a deleted card back to the active records.
func (s *Service) Restore(ctx context.Context, rawID string) error {
	return s.setDeleted(ctx, rawID, false)
}

func (s *Service) setDeleted(ctx context.Context, rawID string, deleted bool) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if err := s.repo.SetDeleted(ctx, id, deleted); err != nil {
		return s.repoError("set deleted", id, err)
	}
	s.logger.Info("cards.set_deleted.ok", "id", id, "deleted", deleted)
	return nil
}

// Counts reports how many cards are stored, split by state.
func (s *Service) Counts(ctx context.Context) (entity.CardCounts, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		s.logger.Error("failed to count cards", "error", err)
		return entity.CardCounts{}, common.InternalError("failed to count cards")
	}
	return counts, nil
}

func (s *Service) repoError(op string, id uuid.UUID, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		s.logger.Warn("card not found", "op", op, "id", id)
		return common.NotFoundError("Card not found")
	}
	s.logger.Error("card repository failed", "op", op, "id", id, "error", err)
	return common.InternalErrorf("failed to %s card", op)
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, common.InvalidArgumentError("card id must be a UUID")
	}
	return id, nil
}

func clean(f entity.CardFields) entity.CardFields {
	f.Name = strings.TrimSpace(f.Name)
	f.Company = strings.TrimSpace(f.Company)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
	f.Website = strings.TrimSpace(f.Website)
	f.City = strings.TrimSpace(f.City)
	return f
}

func validate(f entity.CardFields) error {
	v := common.NewValidator()
	maxLen := common.MaxLength(constants.MaxFieldLength)
	v.Field(constants.FieldName, f.Name, common.ValidUTF8, maxLen)
	v.Field(constants.FieldCompany, f.Company, common.ValidUTF8, maxLen)
	v.Field(constants.FieldPhone, f.Phone, common.ValidUTF8, maxLen)
	v.Field(constants.FieldEmail, f.Email, common.ValidUTF8, maxLen)
	v.Field(constants.FieldWebsite, f.Website, common.ValidUTF8, maxLen)
	v.Field(constants.FieldCity, f.City, common.ValidUTF8, maxLen)
	return common.ValidateAndReturnError(v)
}
