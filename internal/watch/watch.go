// Package watch reruns a conversion whenever log files in a directory change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const (
	DefaultPattern  = "*.txt"
	DefaultDebounce = 2 * time.Second
)

// ConvertFunc converts the given files.
type ConvertFunc func(ctx context.Context, paths []string) error

// Options configures a Watcher.
type Options struct {
	Dir      string
	Pattern  string
	Debounce time.Duration
	Clock    quartz.Clock
	Logger   zerolog.Logger
	Convert  ConvertFunc
}

// Watcher converts every matching file in a directory on start and again
// after each burst of changes has settled.
type Watcher struct {
	opts    Options
	pending chan struct{}
}

// New returns a watcher, filling unset options with defaults.
func New(opts Options) *Watcher {
	if opts.Pattern == "" {
		opts.Pattern = DefaultPattern
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	return &Watcher{opts: opts, pending: make(chan struct{}, 1)}
}

// Run watches until ctx is cancelled. Conversion failures are logged and
// do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.opts.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.opts.Dir, err)
	}
	w.opts.Logger.Info().Str("dir", w.opts.Dir).Str("pattern", w.opts.Pattern).Msg("Watching for hand histories")

	debounce := NewDebouncer(w.opts.Clock, w.opts.Debounce, w.schedule)
	defer debounce.Stop()

	w.schedule()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				w.opts.Logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Change detected")
				debounce.Trigger()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.opts.Logger.Warn().Err(err).Msg("Watcher error")
		case <-w.pending:
			w.convert(ctx)
		}
	}
}

func (w *Watcher) schedule() {
	select {
	case w.pending <- struct{}{}:
	default:
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	ok, _ := filepath.Match(w.opts.Pattern, filepath.Base(event.Name))
	return ok
}

func (w *Watcher) convert(ctx context.Context) {
	paths, err := filepath.Glob(filepath.Join(w.opts.Dir, w.opts.Pattern))
	if err != nil {
		w.opts.Logger.Error().Err(err).Msg("Failed to list input files")
		return
	}
	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	if err := w.opts.Convert(ctx, paths); err != nil {
		w.opts.Logger.Error().Err(err).Msg("Conversion failed")
	}
}

// Debouncer calls fire once a burst of Trigger calls has been quiet for the delay.
type Debouncer struct {
	clock quartz.Clock
	delay time.Duration
	fire  func()

	mu    sync.Mutex
	timer *quartz.Timer
}

// NewDebouncer returns an idle debouncer.
func NewDebouncer(clock quartz.Clock, delay time.Duration, fire func()) *Debouncer {
	return &Debouncer{clock: clock, delay: delay, fire: fire}
}

// Trigger starts or restarts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		d.timer = d.clock.AfterFunc(d.delay, d.fire, "watch", "debounce")
		return
	}
	d.timer.Reset(d.delay, "watch", "debounce")
}

// Stop cancels a pending fire.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
