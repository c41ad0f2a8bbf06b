package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/viper"
)

var logger *slog.Logger

// initLogging configures the process-wide slog logger. Commands call it
// lazily at the start of their run funcs so flag and config state is
// already resolved.
func initLogging() {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
