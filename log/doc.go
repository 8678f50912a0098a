// Package log provides a concurrency-safe structured logger built on
// [log/slog].
//
// A [Logger] is configured at creation time with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithCaller(true))
//
//	logger.Info("config loaded", slog.String("path", path))
//
// Every level has a context-aware variant (InfoContext and so on). The
// context-unaware forms use [DefaultContextProvider].
//
// # Levels
//
// In addition to the slog levels, [LevelTrace] sits below [LevelDebug] and
// is reported as "TRACE" rather than "DEBUG-4".
//
// # Output
//
// [FormatText] (the default) and [FormatJSON] are supported. Text output is
// styled with lipgloss for terminals unless [WithPretty] disables it.
// [WithTimeLayout] accepts the names of the [time] package layouts or a
// custom layout; "none" omits timestamps.
//
// # Package logger
//
// The package-level functions ([Info], [Debug], ...) write through a default
// logger that [Config] reconfigures and [Default] returns.
package log
