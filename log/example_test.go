package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/cjhanks/appconf/log"
)

func Example_basic() {
	logger := log.Make(os.Stderr)
	logger.Info("config loaded", slog.String("path", "app.conf"))
}

func Example_trace() {
	// Trace is below Debug and carries per-directive parser events.
	logger := log.Make(os.Stderr, log.WithLevel(log.LevelTrace))

	logger.Trace("define", slog.String("macro", "PORT"), slog.Int("scope", 0))
	logger.Trace("section open", slog.String("key", "db"))
}

func Example_json() {
	logger := log.Make(os.Stderr,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("Kitchen"),
		log.WithCaller(true))

	logger.Warn("cannot watch directory", slog.String("dir", "/etc/app"))
}

func Example_packageLevel() {
	// The package-level logger is reconfigured in place; loggers obtained
	// from Default before the call keep their settings.
	log.Config(log.WithLevel(log.LevelDebug), log.WithPretty(false))

	ctx := context.Background()
	log.DebugContext(ctx, "load source", slog.String("source", "<stdin>"))

	watcher := log.With(slog.String("component", "watch"))
	watcher.InfoContext(ctx, "config loaded", slog.Int("files", 3))
}
