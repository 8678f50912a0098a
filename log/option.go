package log

// Option derives a new logger configuration from an existing one. Options
// never modify their argument, so a Logger can be rewrapped without
// affecting loggers made from it earlier.
type Option func(config) config

// apply folds opts over cfg in order; later options win.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}
