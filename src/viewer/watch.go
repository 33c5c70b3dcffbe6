package viewer

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/Arbite-Robotics/jcs-applications/src/logging"
)

var errNothingToWatch = errors.New("nothing to watch")

// watchFiles calls onChange after any of patterns (paths or globs) is written,
// created, renamed or removed, coalescing bursts within debounce. The parent
// directories are watched so files replaced by rename are still seen.
// It returns when ctx is done.
func watchFiles(ctx context.Context, patterns []string, debounce time.Duration, onChange func()) error {
	if len(patterns) == 0 {
		return errNothingToWatch
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer func() { _ = watcher.Close() }()

	abs := make([]string, 0, len(patterns))
	dirs := map[string]bool{}
	for _, p := range patterns {
		a, err := filepath.Abs(p)
		if err != nil {
			return errors.Wrapf(err, "resolve %s", p)
		}
		abs = append(abs, a)
		dir := filepath.Dir(a)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "watch %s", dir)
		}
		dirs[dir] = true
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !matchesAny(abs, event.Name) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(debounce, func() {
				logging.Debugf("%s changed, reloading", name)
				onChange()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warnf("watcher error: %v", err)
		}
	}
}

func matchesAny(patterns []string, name string) bool {
	name, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	for _, p := range patterns {
		if p == name {
			return true
		}
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
