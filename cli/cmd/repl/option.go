package repl

import (
	"context"

	"github.com/cjhanks/appconf/lang"
	"github.com/cjhanks/appconf/log"
)

// LoadFunc reloads the configuration being browsed.
type LoadFunc func(context.Context) (*lang.Config, error)

type options struct {
	logger  log.Logger
	reload  LoadFunc
	path    string
	history string
	tty     bool
}

// Option configures [Run].
type Option func(*options)

// WithLogger sets the logger for REPL events.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithReload enables the reload and edit commands.
func WithReload(fn LoadFunc) Option {
	return func(o *options) { o.reload = fn }
}

// WithEditPath sets the file opened by the edit command.
func WithEditPath(path string) Option {
	return func(o *options) { o.path = path }
}

// WithHistoryFile sets the file that persists input history. Without it the
// history lasts for the session only.
func WithHistoryFile(path string) Option {
	return func(o *options) { o.history = path }
}

// WithInputTTY reads keys from the terminal device instead of standard
// input, for when standard input carried the configuration.
func WithInputTTY(enable bool) Option {
	return func(o *options) { o.tty = enable }
}
