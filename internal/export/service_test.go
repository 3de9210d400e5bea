package export

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/visiting-cards/internal/entity"
	"github.com/joseph-ayodele/visiting-cards/internal/repository"
)

func TestExportCardsXLSX(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := repository.Open(ctx, repository.Config{DSN: "file:" + filepath.Join(t.TempDir(), "cards.db") + "?_time_format=sqlite"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { repository.Close(db, logger) })
	require.NoError(t, repository.Migrate(ctx, db, logger))
	repo := repository.NewCardRepository(db, logger)

	kept, err := repo.Create(ctx, entity.CardFields{Name: "Rahul Sharma", Company: "ACME TECH", Phone: "+919876543210", Email: "rahul@acme.com", Website: "-", City: "Pune"})
	require.NoError(t, err)
	gone, err := repo.Create(ctx, entity.CardFields{Name: "Old Contact", Website: "-"})
	require.NoError(t, err)
	require.NoError(t, repo.SetDeleted(ctx, gone.ID, true))

	data, err := NewService(repo, logger).ExportCardsXLSX(ctx)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, []string{
		"Rahul Sharma", "ACME TECH", "+919876543210", "rahul@acme.com", "-", "Pune",
		kept.CreatedAt.UTC().Format(createdAtLayout),
	}, rows[1])
}

func TestBuildWorkbookEmpty(t *testing.T) {
	f, err := buildWorkbook(nil)
	require.NoError(t, err)
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Headers, rows[0])
}
