package cmd

import (
	"context"
	"log/slog"

	"github.com/cjhanks/appconf/lang"
)

// Fmt parses the source and writes it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native appconf syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	Dump   Dump   `cmd:""                    help:"Print the typed value tree."`
}

// Native formats input as native appconf syntax.
type Native struct {
	Indent int `default:"2" help:"Indent width; 0 writes a single line." short:"i"`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) error {
	return format(ctx, "native", func(cfg *lang.Config, src Source) error {
		return cfg.Format(ctx, src.output(), f.Indent)
	})
}

// JSON formats input as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width; 0 writes compact JSON." short:"i"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	return format(ctx, "json", func(cfg *lang.Config, src Source) error {
		return cfg.FormatJSON(ctx, src.output(), j.Indent)
	})
}

// YAML formats input as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width; 0 writes flow style." short:"i"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	return format(ctx, "yaml", func(cfg *lang.Config, src Source) error {
		return cfg.FormatYAML(ctx, src.output(), y.Indent)
	})
}

// Dump prints every value with its kind.
type Dump struct{}

// Run executes the dump command.
func (*Dump) Run(ctx context.Context) error {
	return format(ctx, "dump", func(cfg *lang.Config, src Source) error {
		return cfg.Dump(src.output())
	})
}

// format loads the source and hands it to write. Write failures are tagged
// with the format name.
func format(
	ctx context.Context,
	name string,
	write func(*lang.Config, Source) error,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src := sourceFrom(ctx)

	cfg, err := src.Load(ctx)
	if err != nil {
		return err
	}

	if err := write(cfg, src); err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", name))
	}

	return nil
}
