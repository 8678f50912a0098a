package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cjhanks/appconf/lang"
	"github.com/cjhanks/appconf/log"
	"github.com/cjhanks/appconf/watch"
)

// Watch reloads the source file whenever it or an included file changes.
type Watch struct {
	Debounce time.Duration `default:"100ms" help:"Quiet period before reloading."`
	Print    bool          `help:"Print the configuration after each reload." short:"p"`
	Indent   int           `default:"2" help:"Indent width for --print." short:"i"`
}

// Run executes the watch command. It returns when ctx is cancelled.
func (c *Watch) Run(ctx context.Context) error {
	src := sourceFrom(ctx)
	if src.IsStdin() {
		return ErrStdinWatch
	}

	w := watch.New(src.Path,
		watch.WithDebounce(c.Debounce),
		watch.WithLogger(log.Default()),
		watch.WithLoadOptions(src.Options...),
	)

	return w.Run(ctx, func(cfg *lang.Config, err error) {
		if err != nil || !c.Print {
			return
		}

		out := src.output()

		fmt.Fprintf(out, "# %s digest %016x\n", src.Name(), cfg.Digest())

		if err := cfg.Format(ctx, out, c.Indent); err != nil {
			log.ErrorContext(ctx, "print failed", slog.Any("error", err))
		}
	})
}
