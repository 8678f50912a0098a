package cmd

import (
	"context"
	"path/filepath"

	"github.com/cjhanks/appconf/cli/cmd/repl"
	"github.com/cjhanks/appconf/log"
)

// Repl browses the configuration interactively.
type Repl struct {
	NoHistory bool `help:"Do not read or write the history file."`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	src := sourceFrom(ctx)

	cfg, err := src.Load(ctx)
	if err != nil {
		return err
	}

	opts := []repl.Option{
		repl.WithLogger(log.Default()),
		repl.WithInputTTY(src.IsStdin()),
	}

	if !src.IsStdin() {
		opts = append(opts, repl.WithReload(src.Load), repl.WithEditPath(src.Path))
	}

	if ktx := kongContextFrom(ctx); ktx != nil && !r.NoHistory {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok {
			opts = append(opts, repl.WithHistoryFile(filepath.Join(dir, repl.HistoryFile)))
		}
	}

	return repl.Run(ctx, cfg, opts...)
}
