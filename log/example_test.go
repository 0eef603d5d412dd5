package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/cfgconv/log"
)

func Example_basic() {
	logger := log.Make(os.Stderr)
	logger.Log(context.Background(), log.LevelInfo, "conversion started",
		slog.String("input", "config.yaml"))
}

func Example_configuration() {
	logger := log.Make(os.Stderr,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"),
		log.WithCaller(true))

	logger.Log(context.Background(), log.LevelTrace, "emit",
		slog.String("line", "interval := 30;"))
}

func Example_default() {
	ctx := context.Background()

	log.Config(log.WithLevel(log.LevelWarn), log.WithPretty(false))

	log.InfoContext(ctx, "suppressed")
	log.WarnContext(ctx, "invalid name", slog.String("name", "device1"))
}
