// Package app wires configuration into the services shared by the daemon and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/visiting-cards/internal/cardfields"
	"github.com/joseph-ayodele/visiting-cards/internal/cards"
	"github.com/joseph-ayodele/visiting-cards/internal/common"
	"github.com/joseph-ayodele/visiting-cards/internal/export"
	"github.com/joseph-ayodele/visiting-cards/internal/extract"
	"github.com/joseph-ayodele/visiting-cards/internal/ocr"
	"github.com/joseph-ayodele/visiting-cards/internal/repository"
	"github.com/joseph-ayodele/visiting-cards/internal/server"
)

type App struct {
	Config *common.Config
	DB     *repository.DB
	Repo   repository.CardRepository
	Engine *cardfields.Engine
	Cards  *cards.Service
	Export *export.Service
	Logger *slog.Logger
}

// NewEngine builds the extraction engine from the built-in tables plus RULES_FILE, if set.
func NewEngine(cfg *common.Config, logger *slog.Logger) (*cardfields.Engine, error) {
	rules, err := cardfields.LoadRules(cfg.Rules.File)
	if err != nil {
		return nil, err
	}
	if cfg.Rules.File != "" {
		logger.Info("loaded extraction rules", "file", cfg.Rules.File)
	}
	return cardfields.NewEngine(rules), nil
}

// NewOCR builds the tesseract-backed text extractor.
func NewOCR(cfg *common.Config, logger *slog.Logger) extract.TextExtractor {
	ocrx := ocr.NewExtractor(ocrConfig(cfg), logger)
	return extract.NewOCRAdapter(ocrx, logger)
}

func ocrConfig(cfg *common.Config) ocr.Config {
	return ocr.Config{
		Tesseract:           cfg.OCR.Tesseract,
		TesseractLang:       cfg.OCR.TesseractLang,
		TessdataDir:         cfg.OCR.TessdataDir,
		HeicConverter:       cfg.OCR.HeicConverter,
		EnableTSVConfidence: cfg.OCR.TSVConfidence,
		PSM:                 cfg.OCR.PSM,
		OEM:                 cfg.OCR.OEM,
		Timeout:             cfg.OCR.Timeout,
	}
}

// New opens the database and builds every service. Call Close when done.
func New(ctx context.Context, cfg *common.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine, err := NewEngine(cfg, logger)
	if err != nil {
		return nil, err
	}

	db, err := server.ConnectDB(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	repo := repository.NewCardRepository(db, logger)

	svc, err := cards.NewService(repo, NewOCR(cfg, logger), extract.NewRulesAdapter(engine), cards.Options{
		UploadDir:      cfg.OCR.UploadDir,
		CacheSize:      cfg.OCR.CacheSize,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	}, logger)
	if err != nil {
		server.CloseDB(db, logger)
		return nil, err
	}

	return &App{
		Config: cfg,
		DB:     db,
		Repo:   repo,
		Engine: engine,
		Cards:  svc,
		Export: export.NewService(repo, logger),
		Logger: logger,
	}, nil
}

func (a *App) Close() {
	server.CloseDB(a.DB, a.Logger)
}
