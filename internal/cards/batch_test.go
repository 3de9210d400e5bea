package cards

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/visiting-cards/internal/async"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestCollectImages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"), "a")
	writeFile(t, filepath.Join(root, "notes.txt"), "n")
	writeFile(t, filepath.Join(root, "sub", "b.HEIC"), "b")
	writeFile(t, filepath.Join(root, ".hidden", "c.png"), "c")
	writeFile(t, filepath.Join(root, ".d.png"), "d")

	paths, stats, err := CollectImages(root, true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.jpg"),
		filepath.Join(root, "sub", "b.HEIC"),
	}, paths)
	assert.Equal(t, uint32(2), stats.Matched)

	paths, _, err = CollectImages(root, false)
	require.NoError(t, err)
	assert.Len(t, paths, 4)

	_, _, err = CollectImages(" ", true)
	assert.Error(t, err)
}

func TestProcessCardThroughQueue(t *testing.T) {
	svc, _ := newTestService(t, &fakeOCR{text: cardText})
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "one.jpg"), "first card")
	writeFile(t, filepath.Join(root, "two.png"), "second card")

	paths, _, err := CollectImages(root, true)
	require.NoError(t, err)

	results := make(chan async.Result, len(paths))
	q := async.NewProcessorQueue(svc, quietLogger(), async.WithWorkers(2), async.WithResultHandler(func(r async.Result) {
		results <- r
	}))
	for _, p := range paths {
		require.NoError(t, q.Enqueue(context.Background(), async.NewJob(p)))
	}
	q.Shutdown(context.Background())
	close(results)

	saved := 0
	for r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, "Rahul Sharma", r.Card.Name)
		saved++
	}
	assert.Equal(t, 2, saved)

	counts, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Active)
}
