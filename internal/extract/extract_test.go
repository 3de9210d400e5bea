package extract

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/visiting-cards/internal/ocr"
)

type cannedRunner struct{ out string }

func (c cannedRunner) Run(context.Context, string, ...string) ([]byte, []byte, error) {
	return []byte(c.out), nil, nil
}

func TestOCRAdapterCopiesResult(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := ocr.NewExtractor(ocr.Config{}, logger, ocr.WithRunner(cannedRunner{out: "Rahul Sharma\r\n"}))
	a := NewOCRAdapter(e, logger)

	var _ TextExtractor = a
	res, err := a.Extract(context.Background(), "card.png")
	require.NoError(t, err)
	assert.Equal(t, "Rahul Sharma", res.Text)
	assert.Equal(t, "IMAGE", res.SourceType)
	assert.Equal(t, "image-ocr", res.Method)
	assert.Greater(t, res.Confidence, float32(0))
}

func TestRulesAdapter(t *testing.T) {
	var a FieldExtractor = NewRulesAdapter(nil)
	got, err := a.ExtractFields(context.Background(), "Rahul Sharma\nrahul@acmetech.com")
	require.NoError(t, err)
	assert.Equal(t, "rahul@acmetech.com", got.Email)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err = a.ExtractFields(ctx, "anything")
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, got.Empty())
	assert.Equal(t, "-", got.Website)
}

