package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cjhanks/appconf/lang"
	"github.com/cjhanks/appconf/log"
)

// Check parses the source and verifies the kinds of selected values.
type Check struct {
	Assert []string `help:"Require the value at dotted KEY to have KIND (float, int, string, section)." placeholder:"KEY=KIND" sep:"none" short:"a"`
}

// assertion is one parsed --assert argument.
type assertion struct {
	key  string
	kind lang.Kind
}

func parseAssertion(s string) (assertion, error) {
	key, name, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)

	if !ok || key == "" {
		return assertion{}, ErrBadAssert.With(slog.String("assert", s))
	}

	kind, ok := lang.ParseKind(name)
	if !ok {
		return assertion{}, ErrBadAssert.With(
			slog.String("assert", s),
			slog.String("kind", name),
		)
	}

	return assertion{key: key, kind: kind}, nil
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	asserts := make([]assertion, 0, len(c.Assert))

	for _, s := range c.Assert {
		a, err := parseAssertion(s)
		if err != nil {
			return err
		}

		asserts = append(asserts, a)
	}

	src := sourceFrom(ctx)

	cfg, err := src.Load(ctx)
	if err != nil {
		return err
	}

	var failed []string

	for _, a := range asserts {
		ok := cfg.AssertType(a.key, a.kind)

		log.DebugContext(ctx, "assert",
			slog.String("key", a.key),
			slog.String("kind", a.kind.String()),
			slog.Bool("ok", ok))

		if !ok {
			failed = append(failed, a.key+"="+a.kind.String())
		}
	}

	if len(failed) > 0 {
		return ErrAssert.With(
			slog.String("source", src.Name()),
			slog.Any("failed", failed),
		)
	}

	_, err = fmt.Fprintf(src.output(), "%s: ok (%d keys, %d files, digest %016x)\n",
		src.Name(), cfg.Len(), len(cfg.Files()), cfg.Digest())

	return err
}
