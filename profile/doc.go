// Package profile provides optional runtime profiling for appconf.
//
// Profiling is compiled in only with the "pprof" build tag, which wires
// [github.com/pkg/profile] and registers the [net/http/pprof] handlers.
// Without the tag [Modes] is empty and [Profiler.Start] does nothing.
//
//	stop := profile.New(
//		profile.WithMode("cpu"),
//		profile.WithPath(dir),
//	).Start()
//	defer stop.Stop()
//
// Profiles are written to the output directory named by mode (cpu.pprof,
// mem.pprof, ...) and read with "go tool pprof".
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
