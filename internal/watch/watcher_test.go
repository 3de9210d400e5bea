package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func next(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case p, ok := <-ch:
		require.True(t, ok, "channel closed")
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher event")
		return ""
	}
}

func TestWatcherEmitsExistingAndNewImages(t *testing.T) {
	root := t.TempDir()
	existing := filepath.Join(root, "existing.jpg")
	require.NoError(t, os.WriteFile(existing, []byte("a"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	events, _, err := Start(ctx, Config{
		Roots:       []string{root},
		InitialScan: true,
		Debounce:    20 * time.Millisecond,
		SkipHidden:  true,
	}, logger)
	require.NoError(t, err)

	assert.Equal(t, existing, next(t, events))

	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden.png"), []byte("h"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "skip.txt"), []byte("s"), 0o600))
	added := filepath.Join(root, "new.png")
	require.NoError(t, os.WriteFile(added, []byte("b"), 0o600))

	assert.Equal(t, added, next(t, events))

	cancel()
	for range events {
	}
}

func TestStartRequiresRoots(t *testing.T) {
	_, _, err := Start(context.Background(), Config{}, nil)
	require.Error(t, err)
}
