// Package profile provides optional runtime profiling for cfgconv.
//
// Profiling is built on [github.com/pkg/profile] and is only compiled in
// with the "pprof" build tag:
//
//	go build -tags pprof ./...
//
// Without the tag, [Modes] is empty and [Profiler.Start] is a no-op.
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	defer p.Start().Stop()
//
// Profile files are written to Path with names matching the mode
// (for example, cpu.pprof or mem.pprof). Analyze them with:
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
