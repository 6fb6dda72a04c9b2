package catalogfs

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a Store when either catalog file changes on disk. Bursts of
// events (editors often write, chmod and rename in quick succession) are
// collapsed into one reload after Debounce of quiet.
type Watcher struct {
	store    *Store
	logger   *zap.Logger
	debounce time.Duration

	// OnReload, when set, is called after every successful reload.
	OnReload func(*Snapshot)
}

func NewWatcher(store *Store, logger *zap.Logger, debounce time.Duration) *Watcher {
	return &Watcher{store: store, logger: logger, debounce: debounce}
}

// Start begins watching and returns once the watches are registered. The
// directories holding the files are watched, not the files themselves, so
// replacements by rename are seen. Watching stops when ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	targets := map[string]bool{
		filepath.Clean(w.store.FoodPath):     true,
		filepath.Clean(w.store.ExercisePath): true,
	}
	dirs := map[string]bool{}
	for path := range targets {
		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return err
		}
		dirs[dir] = true
	}

	go w.loop(ctx, fw, targets)
	w.logger.Info("catalog watcher started", zap.String("food", w.store.FoodPath), zap.String("exercises", w.store.ExercisePath))
	return nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, targets map[string]bool) {
	defer fw.Close()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !targets[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				fire = time.After(w.debounce)
			}
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	snap, err := w.store.Reload()
	if err != nil {
		w.logger.Error("catalog reload failed", zap.Error(err))
		return
	}
	fields := []zap.Field{
		zap.Int("foods", len(snap.Foods)),
		zap.Int("exercises", len(snap.Exercises)),
	}
	if n := len(snap.FoodErrors) + len(snap.ExerciseErrors); n > 0 {
		w.logger.Warn("catalog reloaded with rejected rows", append(fields, zap.Int("rejected", n))...)
	} else {
		w.logger.Info("catalog reloaded", fields...)
	}
	if w.OnReload != nil {
		w.OnReload(snap)
	}
}
