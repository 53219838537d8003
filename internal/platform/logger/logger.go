package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/flashdeck/internal/config"
)

// DefaultLevel is used when the configured level is not recognised.
const DefaultLevel = slog.LevelInfo

// ParseLevel maps a case-insensitive level name to a slog.Level. The second
// result is false for unknown names, in which case DefaultLevel is returned.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return DefaultLevel, false
	}
}

// Setup initializes the application's logging system from the server
// configuration. It creates a JSON logger on stdout with the configured level
// and installs it as the slog default.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return setup(cfg, os.Stdout, os.Stderr), nil
}

// SetupWriter is Setup with the log output redirected to out, e.g. stderr
// when stdout carries command output.
func SetupWriter(cfg config.ServerConfig, out io.Writer) *slog.Logger {
	return setup(cfg, out, out)
}

func setup(cfg config.ServerConfig, out, warnOut io.Writer) *slog.Logger {
	level, ok := ParseLevel(cfg.LogLevel)
	if !ok {
		// The JSON logger does not exist yet; warn through a plain text one.
		slog.New(slog.NewTextHandler(warnOut, nil)).Warn(
			"invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", DefaultLevel.String())
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
