// Package cli contains the command line interface for cfgconv.
//
// # Usage
//
//	cfgconv [flags] [convert] -i config.yaml -o config.cfg
//	cfgconv check -i config.yaml
//	cfgconv dump -i config.yaml -f json
//	cfgconv init
//
// convert is the default command. Input and output default to "-", naming
// stdin and stdout.
//
// # Configuration File
//
// Flag defaults are read from config.yaml in the user configuration
// directory ($XDG_CONFIG_HOME/cfgconv on Linux). Keys name flags using
// hyphens or underscores; nested mappings name the flags of a command:
//
//	log-level: debug
//	log_pretty: false
//	convert:
//	  output: out.cfg
//
// Command-line flags override configuration file values. "cfgconv init"
// writes the current global flag values to that file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp layout (RFC3339, RFC3339Nano, none, ...)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Style text output on terminals
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     $XDG_CACHE_HOME/cfgconv/pprof)
package cli
