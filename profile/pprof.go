//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// Modes returns the sorted list of supported profiling modes when built with
// the pprof build tag.
var Modes = sync.OnceValue(
	func() []string {
		return slices.Sorted(maps.Keys(mode))
	},
)

var mode = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"clock":     profile.ClockProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// option appends a [profile.Profile] option derived from a Profiler field.
type option func([]func(*profile.Profile)) []func(*profile.Profile)

func start(p Profiler) Stopper {
	fn, ok := mode[p.Mode]
	if !ok {
		return ignore{}
	}

	opts := []func(*profile.Profile){fn, profile.NoShutdownHook}
	for _, o := range []option{withPath(p.Path), withQuiet(p.Quiet)} {
		opts = o(opts)
	}

	return profile.Start(opts...)
}

func withPath(path string) option {
	return func(opts []func(*profile.Profile)) []func(*profile.Profile) {
		if path != "" {
			opts = append(opts, profile.ProfilePath(path))
		}

		return opts
	}
}

func withQuiet(quiet bool) option {
	return func(opts []func(*profile.Profile)) []func(*profile.Profile) {
		if quiet {
			opts = append(opts, profile.Quiet)
		}

		return opts
	}
}
