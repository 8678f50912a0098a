package cli

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/cjhanks/appconf/lang"
	"github.com/cjhanks/appconf/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag defaults from
// an appconf settings file:
//
//	kong.Configuration(resolve(ctx, "config", path), path)
//
// The values are taken from the section called section, or from the root when
// the file has no such section. Nested sections contribute their leaves with
// the section names joined by "-", so
//
//	config {
//	  log { level = debug; pretty = false }
//	  pprof_mode = cpu;
//	}
//
// sets --log-level=debug, --log-pretty=false and --pprof-mode=cpu. Keys may
// use "_" in place of "-". Flags given on the command line take precedence.
// Relative includes resolve against the directory of path.
//
// A file that cannot be parsed is logged and ignored so that a broken
// settings file never prevents the command from running.
func resolve(
	ctx context.Context,
	section, path string,
) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		cfg, err := lang.Parse(ctx, path, r, lang.WithLogger(log.Default()))
		if err != nil {
			log.WarnContext(ctx, "ignoring settings file", slog.Any("error", err))

			return settings{}, nil
		}

		root := cfg.Root()
		if sec, err := cfg.Section(section); err == nil {
			root = sec
		}

		values := settings{}
		values.flatten("", root)

		return values, nil
	}
}

// settings implements [kong.Resolver] over flattened flag names.
type settings map[string]string

// flatten records every leaf below sec under its "-"-joined path.
func (s settings) flatten(prefix string, sec *lang.Section) {
	for key, val := range sec.All() {
		key = strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		switch v := val.(type) {
		case *lang.Section:
			s.flatten(key, v)

		case *lang.Leaf:
			if t, err := v.Text(); err == nil {
				s[key] = t
			} else {
				s[key] = v.String()
			}
		}
	}
}

// Validate implements [kong.Resolver].
func (settings) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. Unknown flags resolve to nil so kong
// falls back to their defaults.
func (s settings) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := s[flag.Name]; ok {
		return value, nil
	}

	return nil, nil
}
