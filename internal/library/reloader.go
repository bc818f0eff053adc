package library

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const (
	defaultReloadInterval = time.Minute
	maxBackoff            = 10 * time.Minute
	debounce              = 250 * time.Millisecond
)

// calculateBackoff returns the delay before the next periodic reload after
// the given number of consecutive failures.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

// Reloader keeps a Store in sync with a data directory.
type Reloader struct {
	Dir      string
	Store    *Store
	Interval time.Duration
	Log      zerolog.Logger
	// OnReload runs after every reload attempt, for cache invalidation.
	OnReload func(ctx context.Context, snap Snapshot)
}

// Reload loads the directory once into the store.
func (r *Reloader) Reload(ctx context.Context) Snapshot {
	docs, failed, err := LoadDir(r.Dir)
	r.Store.Replace(docs, failed, err)
	snap := r.Store.Snapshot()
	if err != nil {
		r.Log.Warn().Err(err).Str("dir", r.Dir).Int("documents", len(snap.Documents)).Msg("library reload had errors")
	} else {
		r.Log.Info().Str("dir", r.Dir).Int("documents", len(snap.Documents)).Msg("library reloaded")
	}
	if r.OnReload != nil {
		r.OnReload(ctx, snap)
	}
	return snap
}

// Run reloads on file changes (debounced) and on a periodic timer until
// ctx is cancelled. Periodic reloads back off while failures continue.
// If the directory cannot be watched only the timer is used.
func (r *Reloader) Run(ctx context.Context) error {
	interval := r.Interval
	if interval <= 0 {
		interval = defaultReloadInterval
	}

	var events <-chan fsnotify.Event
	var watchErrs <-chan error
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		r.Log.Warn().Err(err).Msg("file watcher unavailable, using periodic reload")
	} else {
		defer watcher.Close()
		if err := watcher.Add(r.Dir); err != nil {
			r.Log.Warn().Err(err).Str("dir", r.Dir).Msg("cannot watch data dir, using periodic reload")
		} else {
			events = watcher.Events
			watchErrs = watcher.Errors
		}
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !ValidName(filepath.Base(ev.Name)) {
				continue
			}
			pending = time.After(debounce)
		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			r.Log.Warn().Err(err).Msg("file watcher error")
		case <-pending:
			pending = nil
			r.Reload(ctx)
		case <-timer.C:
			snap := r.Reload(ctx)
			timer.Reset(calculateBackoff(snap.ConsecutiveFailures, interval))
		}
	}
}
