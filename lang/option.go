package lang

import "github.com/cjhanks/appconf/log"

// Default limits applied when no option overrides them.
const (
	DefaultMaxIncludeDepth = 32
	DefaultMaxSectionDepth = 256
)

type options struct {
	logger          log.Logger
	reader          Reader
	maxIncludeDepth int
	maxSectionDepth int
}

// Option configures how configuration text is read and parsed.
type Option func(*options)

// WithLogger sets the structured logger for trace-level parse events.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithReader sets the collaborator used to resolve and read files.
// The default is [OSReader].
func WithReader(r Reader) Option {
	return func(o *options) {
		if r != nil {
			o.reader = r
		}
	}
}

// WithMaxIncludeDepth limits how deeply include directives may nest.
func WithMaxIncludeDepth(depth int) Option {
	return func(o *options) {
		o.maxIncludeDepth = depth
	}
}

// WithMaxSectionDepth limits how deeply sections may nest.
func WithMaxSectionDepth(depth int) Option {
	return func(o *options) {
		o.maxSectionDepth = depth
	}
}

func makeOptions(opts ...Option) options {
	o := options{
		reader:          OSReader{},
		maxIncludeDepth: DefaultMaxIncludeDepth,
		maxSectionDepth: DefaultMaxSectionDepth,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
