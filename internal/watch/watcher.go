// Package watch discovers card images dropped into directories.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/joseph-ayodele/visiting-cards/constants"
)

type Config struct {
	Roots       []string      // directories to watch (recursive)
	InitialScan bool          // if true, walk roots and emit existing images
	Debounce    time.Duration // coalesce rapid create/write bursts per file
	SkipHidden  bool
}

// Start watches cfg.Roots and emits the path of every card image that is created or
// rewritten below them. Both channels close when ctx is done.
func Start(ctx context.Context, cfg Config, logger *slog.Logger) (<-chan string, <-chan error, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(cfg.Roots) == 0 {
		logger.Error("watcher start failed: no roots provided")
		return nil, nil, errors.New("no roots provided")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Error("failed to create fsnotify watcher", "error", err)
		return nil, nil, err
	}

	var initial []string
	addDir := func(root string) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if path != root && cfg.SkipHidden && isHidden(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return w.Add(path)
			}
			if cfg.InitialScan && constants.IsAllowedExt(filepath.Ext(path)) {
				initial = append(initial, path)
			}
			return nil
		})
	}
	for _, r := range cfg.Roots {
		if err := addDir(r); err != nil {
			logger.Error("failed to add root directory", "root", r, "error", err)
			_ = w.Close()
			return nil, nil, err
		}
	}

	evCh := make(chan string, 256)
	errCh := make(chan error, 1)
	go run(ctx, w, cfg, initial, evCh, errCh, logger)
	return evCh, errCh, nil
}

func run(ctx context.Context, w *fsnotify.Watcher, cfg Config, initial []string, evCh chan<- string, errCh chan<- error, logger *slog.Logger) {
	defer close(evCh)
	defer close(errCh)
	defer func() {
		if err := w.Close(); err != nil {
			logger.Warn("failed to close watcher", "error", err)
		}
	}()

	emit := func(p string) bool {
		select {
		case evCh <- p:
			return true
		case <-ctx.Done():
			return false
		}
	}
	for _, p := range initial {
		if !emit(p) {
			return
		}
	}

	pending := map[string]struct{}{}
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	flush := func() bool {
		for p := range pending {
			delete(pending, p)
			if !emit(p) {
				return false
			}
		}
		return true
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-fire:
			fire = nil
			if !flush() {
				return
			}
		case e, ok := <-w.Events:
			if !ok {
				return
			}
			if cfg.SkipHidden && isHidden(e.Name) {
				continue
			}
			if e.Op.Has(fsnotify.Create) {
				// new directories are watched too; Add fails harmlessly for files
				_ = w.Add(e.Name)
			}
			if !constants.IsAllowedExt(filepath.Ext(e.Name)) || !(e.Op.Has(fsnotify.Create) || e.Op.Has(fsnotify.Write)) {
				continue
			}
			pending[e.Name] = struct{}{}
			if cfg.Debounce <= 0 {
				if !flush() {
					return
				}
				continue
			}
			if timer == nil {
				timer = time.NewTimer(cfg.Debounce)
			} else {
				timer.Reset(cfg.Debounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Error("watcher error", "error", err)
			select {
			case errCh <- err:
			default:
			}
		}
	}
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
