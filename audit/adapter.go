package audit

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Adapter writes a message for the named destination.
type Adapter interface {
	Write(name, message string) error
}

// AdapterFunc adapts a function to [Adapter].
type AdapterFunc func(name, message string) error

func (f AdapterFunc) Write(name, message string) error { return f(name, message) }

// ZerologAdapter writes each message as a zerolog event with a "logger"
// field holding the destination name.
type ZerologAdapter struct {
	Logger zerolog.Logger
	Level  zerolog.Level
}

// NewZerologAdapter builds a ZerologAdapter writing JSON lines to w.
func NewZerologAdapter(w io.Writer, level zerolog.Level) *ZerologAdapter {
	return &ZerologAdapter{
		Logger: zerolog.New(w).With().Timestamp().Logger(),
		Level:  level,
	}
}

func (a *ZerologAdapter) Write(name, message string) error {
	a.Logger.WithLevel(a.Level).Str("logger", name).Msg(message)
	return nil
}

// SlogAdapter writes each message to a slog.Logger.
type SlogAdapter struct {
	Logger *slog.Logger
	Level  slog.Level
}

func (a *SlogAdapter) Write(name, message string) error {
	a.Logger.Log(context.Background(), a.Level, message, slog.String("logger", name))
	return nil
}

// FileAdapter appends each message as a line to "<Dir>/<name>.log",
// creating the directory and file as needed.
type FileAdapter struct {
	Dir string

	mu sync.Mutex
}

func (a *FileAdapter) Write(name, message string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return errors.Wrap(err, "audit: create log dir")
	}
	path := a.Path(name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "audit: open %s", path)
	}
	if _, err := io.WriteString(f, message+"\n"); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "audit: write %s", path)
	}
	return errors.Wrapf(f.Close(), "audit: close %s", path)
}

// Path returns the file the named destination is written to.
func (a *FileAdapter) Path(name string) string {
	return filepath.Join(a.Dir, name+".log")
}

// newAdapter builds the adapter registered under typ.
func newAdapter(typ string, opts Options) (Adapter, error) {
	switch strings.ToLower(typ) {
	case "file":
		return &FileAdapter{Dir: opts.LogDir}, nil
	case "zerolog":
		return NewZerologAdapter(opts.Output, zerologLevel(opts.Level)), nil
	case "slog":
		return &SlogAdapter{Logger: NewSlogZerolog(opts.Output, opts.Level), Level: opts.Level}, nil
	case "":
		return nil, ErrNoAdapter
	}
	return nil, errors.Wrapf(ErrUnknownAdapter, "%q", typ)
}
