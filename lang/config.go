package lang

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Config is a parsed configuration file: the root section plus what the
// parse recorded about its inputs.
type Config struct {
	*rootSection

	macros map[string]string
	files  []string
	digest uint64
}

// Load reads and parses the file at path.
func Load(ctx context.Context, path string, opts ...Option) (*Config, error) {
	o := makeOptions(opts...)
	file := o.reader.Resolve("", path)

	data, err := o.reader.ReadFile(ctx, file)
	if err != nil {
		return nil, err
	}

	return parse(ctx, file, data, o)
}

// Parse parses configuration text read from r. Relative includes are
// resolved against name, which may be empty.
func Parse(
	ctx context.Context,
	name string,
	r io.Reader,
	opts ...Option,
) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrIO.Wrap(err).With(slog.String("path", name))
	}

	return parse(ctx, name, data, makeOptions(opts...))
}

// ParseString parses configuration text held in s.
func ParseString(ctx context.Context, s string, opts ...Option) (*Config, error) {
	return parse(ctx, "", []byte(s), makeOptions(opts...))
}

func parse(ctx context.Context, file string, data []byte, o options) (*Config, error) {
	s := newSession(ctx, o)
	top := newSection("")

	if err := s.parse(file, data, top); err != nil {
		return nil, err
	}

	cfg := &Config{
		rootSection: top,
		macros:      s.scope.Macros(),
		files:       s.files,
		digest:      s.hash.Sum64(),
	}

	s.logger.DebugContext(ctx, "parse complete",
		slog.String("file", file),
		slog.Int("keys", top.Len()),
		slog.Int("files", len(cfg.files)),
		slog.Int("macros", len(cfg.macros)))

	return cfg, nil
}

// rootSection names the embedded root section so that the promoted
// [Section.Section] method is not hidden by a field of the same name.
type rootSection = Section

// Root returns the root section.
func (c *Config) Root() *Section { return c.rootSection }

// Files returns every file read, the main file first and then each include
// in the order it was read. In-memory input is recorded under its name.
func (c *Config) Files() []string { return slices.Clone(c.files) }

// Digest returns the xxh3 hash of all bytes read.
func (c *Config) Digest() uint64 { return c.digest }

// Macros returns the macros visible at root scope once parsing ended.
func (c *Config) Macros() map[string]string { return maps.Clone(c.macros) }

// AssertType reports whether the dot-separated path names a value of kind.
// It returns false if any segment is missing.
func (c *Config) AssertType(path string, kind Kind) bool {
	if c == nil || path == "" {
		return false
	}

	v, ok := c.Find(strings.Split(path, ".")...)

	return ok && v.Kind() == kind
}

var root struct {
	sync.RWMutex
	cfg *Config
}

// Initialize loads the process-wide configuration from path.
//
// It succeeds at most once; later calls fail with [ErrAlreadyInitialized].
// A failed call leaves the configuration unset so it may be retried.
func Initialize(ctx context.Context, path string, opts ...Option) (*Config, error) {
	root.Lock()
	defer root.Unlock()

	if root.cfg != nil {
		return nil, ErrAlreadyInitialized.With(slog.String("path", path))
	}

	cfg, err := Load(ctx, path, opts...)
	if err != nil {
		return nil, err
	}

	root.cfg = cfg

	return cfg, nil
}

// Instance returns the configuration built by [Initialize].
func Instance() (*Config, error) {
	root.RLock()
	defer root.RUnlock()

	if root.cfg == nil {
		return nil, ErrUninitialized
	}

	return root.cfg, nil
}
