package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/visiting-cards/internal/entity"
	"github.com/joseph-ayodele/visiting-cards/internal/repository"
)

const (
	// SheetName is the worksheet holding the exported cards.
	SheetName = "Cards"
	// FileName is the download name offered to clients.
	FileName = "visiting_cards_report.xlsx"

	createdAtLayout = "2006-01-02 15:04:05"
)

// Headers are the export columns, in order.
var Headers = []string{"Name", "Company", "Phone", "Email", "Website", "City", "Created At"}

// Service is a tiny façade over the card repository that produces XLSX bytes for exports.
type Service struct {
	repo   repository.CardRepository
	logger *slog.Logger
}

func NewService(repo repository.CardRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ExportCardsXLSX returns an XLSX workbook (as bytes) of the active cards, newest first.
func (s *Service) ExportCardsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	cards, err := s.repo.List(ctx, repository.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}

	f, err := buildWorkbook(cards)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(cards),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func buildWorkbook(cards []*entity.Card) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, err
	}

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}

	for i, c := range cards {
		row := []any{
			c.Name,
			c.Company,
			c.Phone,
			c.Email,
			c.Website,
			c.City,
			c.CreatedAt.UTC().Format(createdAtLayout),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "B", 28) // name, company
	_ = f.SetColWidth(SheetName, "C", "C", 16) // phone
	_ = f.SetColWidth(SheetName, "D", "E", 32) // email, website
	_ = f.SetColWidth(SheetName, "F", "F", 16) // city
	_ = f.SetColWidth(SheetName, "G", "G", 20) // created at
	return f, nil
}
