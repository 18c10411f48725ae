package audit

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Options holds the settings used to build named adapters.
type Options struct {
	// LogDir is the directory the "file" adapter writes "<name>.log" into.
	// Defaults to "<tmp>/logs".
	LogDir string

	// Level is the level of messages written by the "zerolog" and "slog"
	// adapters. Defaults to slog.LevelInfo.
	Level slog.Level

	// Output receives the output of the "zerolog" and "slog" adapters.
	// Defaults to os.Stderr.
	Output io.Writer

	// Logger receives diagnostics about failed writes. Defaults to a logger
	// that discards everything.
	Logger *slog.Logger
}

// DefaultOptions returns [Options] populated with defaults.
func DefaultOptions() Options {
	return Options{
		LogDir: filepath.Join(os.TempDir(), "logs"),
		Level:  slog.LevelInfo,
		Output: os.Stderr,
		Logger: slog.New(slog.DiscardHandler),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.LogDir == "" {
		o.LogDir = d.LogDir
	}
	if o.Output == nil {
		o.Output = d.Output
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	return o
}
