package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"DB_URL", "HTTP_ADDR", "OCR_CACHE_SIZE", "CORS_ALLOWED_ORIGINS", "RULES_FILE",
		"OCR_PSM", "OCR_OEM", "OCR_TSV_CONFIDENCE"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	assert.Contains(t, cfg.Database.DSN, "cards.db")
	assert.Equal(t, ":5001", cfg.Server.HTTPAddr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 256, cfg.OCR.CacheSize)
	assert.Empty(t, cfg.Rules.File)
	assert.Equal(t, 11, cfg.OCR.PSM)
	assert.Zero(t, cfg.OCR.OEM)
	assert.False(t, cfg.OCR.TSVConfidence)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("DB_URL", "postgres://u:p@localhost:5432/cards")
	t.Setenv("OCR_TIMEOUT", "5s")
	t.Setenv("OCR_CACHE_SIZE", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("OCR_PSM", "6")
	t.Setenv("OCR_OEM", "1")
	t.Setenv("OCR_TSV_CONFIDENCE", "true")
	cfg := LoadConfig()
	assert.Equal(t, "postgres://u:p@localhost:5432/cards", cfg.Database.DSN)
	assert.Equal(t, 5*time.Second, cfg.OCR.Timeout)
	assert.Equal(t, 256, cfg.OCR.CacheSize)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 6, cfg.OCR.PSM)
	assert.Equal(t, 1, cfg.OCR.OEM)
	assert.True(t, cfg.OCR.TSVConfidence)
}

func TestConfig_Validate(t *testing.T) {
	cfg := LoadConfig()
	cfg.Database.DSN = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoadEnvFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CARDS_TEST_ENV_KEY=from-file\n"), 0o600))
	t.Setenv("CARDS_TEST_ENV_KEY", "")
	require.NoError(t, os.Unsetenv("CARDS_TEST_ENV_KEY"))

	LoadEnvFiles(path, filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, "from-file", os.Getenv("CARDS_TEST_ENV_KEY"))
}
