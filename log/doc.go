// Package log writes structured records through [log/slog] handlers.
//
// Level, format, timestamp layout and caller reporting are fixed when a
// [Logger] is made. [Logger.With] returns a new Logger.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//	logger.Log(ctx, log.LevelDebug, "converted", slog.Int("lines", n))
//
// The package functions such as [DebugContext] write through a default
// Logger on stderr. [Config] rebuilds it with new options.
//
// [LevelTrace] sits below [LevelDebug]. [FormatText] writes key=value lines,
// styled with lipgloss when [WithPretty] is set and the output is a
// terminal. [FormatJSON] writes one object per line.
package log
