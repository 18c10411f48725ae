package audit

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// NewSlogZerolog returns a slog.Logger backed by a zerolog JSON writer on w.
func NewSlogZerolog(w io.Writer, level slog.Level) *slog.Logger {
	zl := zerolog.New(w).With().Timestamp().Logger()
	return slog.New(
		slogzerolog.Option{
			Level:  level,
			Logger: &zl,
		}.NewZerologHandler(),
	)
}

// ParseLevel converts a level name such as "debug" or "WARN" to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch {
	case strings.EqualFold(s, slog.LevelDebug.String()):
		return slog.LevelDebug, nil
	case strings.EqualFold(s, slog.LevelInfo.String()):
		return slog.LevelInfo, nil
	case strings.EqualFold(s, slog.LevelWarn.String()):
		return slog.LevelWarn, nil
	case strings.EqualFold(s, slog.LevelError.String()):
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.Errorf("audit: unknown level %q", s)
}

func zerologLevel(l slog.Level) zerolog.Level {
	switch {
	case l < slog.LevelInfo:
		return zerolog.DebugLevel
	case l < slog.LevelWarn:
		return zerolog.InfoLevel
	case l < slog.LevelError:
		return zerolog.WarnLevel
	}
	return zerolog.ErrorLevel
}
