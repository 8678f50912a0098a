package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cjhanks/appconf/lang"
)

// Get prints the value at a dotted key.
type Get struct {
	Key    string    `arg:"" help:"Dotted path of the value, e.g. db.primary.port." name:"key"`
	Kind   lang.Kind `help:"Fail unless the value has this kind." placeholder:"KIND" short:"k"`
	Indent int       `default:"2" help:"Indent width when the value is a section." short:"i"`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src := sourceFrom(ctx)

	cfg, err := src.Load(ctx)
	if err != nil {
		return err
	}

	v, err := cfg.Value(strings.Split(g.Key, ".")...)
	if err != nil {
		return err
	}

	if g.Kind != lang.KindUndefined && v.Kind() != g.Kind {
		return ErrKind.With(
			slog.String("key", g.Key),
			slog.String("want", g.Kind.String()),
			slog.String("have", v.Kind().String()),
		)
	}

	w := src.output()

	switch v := v.(type) {
	case *lang.Section:
		return v.Format(ctx, w, g.Indent)

	case *lang.Leaf:
		// Strings print unquoted so the output is usable in scripts.
		s, err := v.Text()
		if err != nil {
			s = v.String()
		}

		_, err = fmt.Fprintln(w, s)

		return err
	}

	return nil
}
