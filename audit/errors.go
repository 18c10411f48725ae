// Package audit keeps named log destinations in an ordered collection and
// writes messages to one or all of them.
//
// Each destination is a [Config] holding an [Adapter] and optional
// [Filter]s. Adapters exist for zerolog, slog and append-only files; named
// adapters ("file", "zerolog", "slog") are built from the logger's [Options].
//
//	l := audit.New(audit.DefaultOptions())
//	_, err := l.Config(collections.KV("default", audit.Config{Type: "file"}))
//	err = l.Write("default", "Message line 1")
//
// [Logger.Broadcast] fans a message out to every destination through
// collection dispatch and reports every failure, not just the first.
package audit

import "github.com/pkg/errors"

var (
	// ErrUnknownAdapter is returned when a Config names an adapter type that
	// does not exist.
	ErrUnknownAdapter = errors.New("audit: unknown adapter type")

	// ErrNoAdapter is returned when a Config has neither an Adapter nor a Type.
	ErrNoAdapter = errors.New("audit: no adapter configured")
)
