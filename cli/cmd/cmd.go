package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cjhanks/appconf/lang"
	"github.com/cjhanks/appconf/log"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// StdinSource is the source path that selects standard input.
const StdinSource = "-"

// Source describes where commands read the configuration from.
type Source struct {
	Path    string        // File path, or [StdinSource]
	Stdin   io.Reader     // Read when Path is [StdinSource]; nil means os.Stdin
	Output  io.Writer     // Command output; nil means os.Stdout
	Options []lang.Option // Passed to every load
}

type sourceKey struct{}

// WithSource returns a new context.Context carrying src.
func WithSource(ctx context.Context, src Source) context.Context {
	return context.WithValue(ctx, sourceKey{}, src)
}

// sourceFrom returns the Source stored by [WithSource], or one reading
// standard input if none was stored.
func sourceFrom(ctx context.Context) Source {
	src, ok := ctx.Value(sourceKey{}).(Source)
	if !ok {
		return Source{Path: StdinSource}
	}

	return src
}

// IsStdin reports whether s reads standard input.
func (s Source) IsStdin() bool { return s.Path == "" || s.Path == StdinSource }

// Name returns the path as shown to the user.
func (s Source) Name() string {
	if s.IsStdin() {
		return "<stdin>"
	}

	return s.Path
}

// Load parses the configuration. Includes read from standard input resolve
// against the working directory.
func (s Source) Load(ctx context.Context) (*lang.Config, error) {
	log.DebugContext(ctx, "load source", slog.String("source", s.Name()))

	if !s.IsStdin() {
		return lang.Load(ctx, s.Path, s.Options...)
	}

	in := s.Stdin
	if in == nil {
		in = os.Stdin
	}

	return lang.Parse(ctx, "", in, s.Options...)
}

func (s Source) output() io.Writer {
	if s.Output == nil {
		return os.Stdout
	}

	return s.Output
}
