// Package watch re-runs a job whenever a file changes.
//
// The watcher observes the file's directory with fsnotify, which survives
// editors that replace files by rename, and falls back to polling the file's
// size and modification time when fsnotify is unavailable.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce coalesces bursts of write events into one run.
const DefaultDebounce = 250 * time.Millisecond

// DefaultPollInterval is used when fsnotify cannot be started.
const DefaultPollInterval = time.Second

// Watcher re-runs a job when its input file changes.
type Watcher struct {
	path     string
	debounce time.Duration
	poll     time.Duration
	log      logrus.FieldLogger
}

// New creates a watcher for path.
func New(path string) *Watcher {
	return &Watcher{
		path:     path,
		debounce: DefaultDebounce,
		poll:     DefaultPollInterval,
		log:      logrus.StandardLogger(),
	}
}

// WithDebounce sets the quiet period required before a re-run.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// WithPollInterval sets the polling interval used without fsnotify.
func (w *Watcher) WithPollInterval(d time.Duration) *Watcher {
	w.poll = d
	return w
}

// WithLogger sets the logger.
func (w *Watcher) WithLogger(log logrus.FieldLogger) *Watcher {
	if log != nil {
		w.log = log
	}
	return w
}

// Run calls fn once, then again after every change to the file, until ctx
// is cancelled. Errors from fn are logged and do not stop the watcher.
// Run returns ctx.Err() on cancellation.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	w.invoke(ctx, fn)

	changes := w.changes(ctx)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case _, ok := <-changes:
			if !ok {
				return ctx.Err()
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.invoke(ctx, fn)
		}
	}
}

func (w *Watcher) invoke(ctx context.Context, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		w.log.WithError(err).WithField("path", w.path).Error("run failed; waiting for next change")
	}
}

// changes emits a value for every observed modification of the file.
func (w *Watcher) changes(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)

	go func() {
		defer close(ch)

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			w.log.WithError(err).Warn("fsnotify unavailable, polling instead")
			w.pollChanges(ctx, ch)
			return
		}
		defer watcher.Close()

		if err := watcher.Add(filepath.Dir(w.path)); err != nil {
			w.log.WithError(err).Warn("cannot watch directory, polling instead")
			w.pollChanges(ctx, ch)
			return
		}

		w.watchChanges(ctx, ch, watcher)
	}()

	return ch
}

func (w *Watcher) watchChanges(ctx context.Context, ch chan<- struct{}, watcher *fsnotify.Watcher) {
	baseName := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != baseName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			notify(ch)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("watch error")
		}
	}
}

func (w *Watcher) pollChanges(ctx context.Context, ch chan<- struct{}) {
	ticker := time.NewTicker(w.poll)
	defer ticker.Stop()

	last := stamp(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			cur := stamp(w.path)
			if cur != last {
				last = cur
				notify(ch)
			}
		}
	}
}

// notify sends without blocking; one pending signal is enough.
func notify(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

type fileStamp struct {
	size    int64
	modTime time.Time
}

func stamp(path string) fileStamp {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{size: info.Size(), modTime: info.ModTime()}
}
