// Package cli contains the command line interface for appconf.
//
// # Usage
//
// Every command reads one configuration, selected with --source (standard
// input by default):
//
//	appconf -s app.conf check -a db.port=INTEGRAL
//	appconf -s app.conf get db.primary
//	appconf -s app.conf fmt json
//	appconf -s app.conf watch --print
//	appconf -s app.conf repl
//
// # Settings File
//
// Flag defaults are read from the "config" section of the settings file in
// the per-user configuration directory, itself written in the appconf
// language. The init command writes the current flag values there:
//
//	config {
//	  log-level = "debug";
//	  log-pretty = false;
//	}
//
// Nested sections are joined with "-" and "_" may stand in for "-", so
// log { level = debug } is equivalent to log_level = debug. Flags given on
// the command line take precedence.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize output (default when stderr is a terminal)
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o appconf .
//
// It adds --pprof-mode (allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread, trace) and --pprof-dir, which defaults to the pprof
// directory under the per-user cache directory.
package cli
