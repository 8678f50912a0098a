package cmd

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Macros prints the macros still defined at root scope after parsing, as
// define directives.
type Macros struct{}

// Run executes the macros command.
func (*Macros) Run(ctx context.Context) error {
	src := sourceFrom(ctx)

	cfg, err := src.Load(ctx)
	if err != nil {
		return err
	}

	macros := cfg.Macros()
	w := src.output()

	for _, name := range slices.Sorted(maps.Keys(macros)) {
		if _, err := fmt.Fprintf(w, "define %s %s\n", name, strconv.Quote(macros[name])); err != nil {
			return err
		}
	}

	return nil
}
