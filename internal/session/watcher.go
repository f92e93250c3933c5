package session

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

const (
	// defaultPollInterval is the backup polling cadence used in case file
	// system events are missed.
	defaultPollInterval = 2 * time.Second

	// Throttle for change callbacks: editors and exports often produce
	// bursts of write events for a single logical save.
	changesPerSecond = 2
	changeBurst      = 1
)

// Watcher monitors the input and configuration files and invokes a callback
// when one of them changes, so the caller can reload and recompute the
// session. Change bursts are throttled and a backup modtime poll covers
// missed events.
type Watcher struct {
	paths        []string
	onChange     func(path string)
	limiter      *rate.Limiter
	pollInterval time.Duration
	modTimes     map[string]time.Time
}

// NewWatcher creates a watcher over the given file paths. onChange is
// called with the changed path; it runs on the watch goroutine and should
// hand heavy work off if needed.
func NewWatcher(paths []string, onChange func(path string)) *Watcher {
	return &Watcher{
		paths:        paths,
		onChange:     onChange,
		limiter:      rate.NewLimiter(changesPerSecond, changeBurst),
		pollInterval: defaultPollInterval,
		modTimes:     make(map[string]time.Time, len(paths)),
	}
}

// Run watches until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) (err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for _, path := range w.paths {
		// A path may not exist yet (e.g. config still on defaults); the
		// backup poll picks it up once created.
		if err := watcher.Add(path); err == nil {
			w.recordModTime(path)
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.limiter.Allow() {
				continue
			}
			w.recordModTime(event.Name)
			w.onChange(event.Name)

		case watchErr := <-watcher.Errors:
			fmt.Fprintf(os.Stderr, "[WARN] File watcher error: %v\n", watchErr)

		case <-ticker.C:
			// Backup polling in case file events are missed.
			for _, path := range w.paths {
				if w.changedSinceLastSeen(path) && w.limiter.Allow() {
					w.onChange(path)
				}
			}
		}
	}
}

// recordModTime stores the current modification time for a path.
func (w *Watcher) recordModTime(path string) {
	if info, err := os.Stat(path); err == nil {
		w.modTimes[path] = info.ModTime()
	}
}

// changedSinceLastSeen compares a path's modification time against the last
// one observed, updating the stored value when it moved.
func (w *Watcher) changedSinceLastSeen(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	last, seen := w.modTimes[path]
	w.modTimes[path] = info.ModTime()
	if !seen {
		return false
	}
	return info.ModTime().After(last)
}
