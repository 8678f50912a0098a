package watch

import (
	"time"

	"github.com/cjhanks/appconf/lang"
	"github.com/cjhanks/appconf/log"
)

// DefaultDebounce is how long a Watcher waits after the last file event
// before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Option configures a [Watcher].
type Option func(*Watcher)

// WithDebounce sets the quiet period before a reload. Non-positive values
// select [DefaultDebounce].
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d <= 0 {
			d = DefaultDebounce
		}

		w.debounce = d
	}
}

// WithLogger sets the logger for reload events. The zero logger is silent.
func WithLogger(logger log.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// WithLoadOptions sets the options passed to [lang.Load] on every reload.
// Files are always read from the operating system, so a [lang.WithReader]
// option is overridden.
func WithLoadOptions(opts ...lang.Option) Option {
	return func(w *Watcher) { w.loadOpts = opts }
}
