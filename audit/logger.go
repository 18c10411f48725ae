package audit

import (
	"github.com/pkg/errors"

	"github.com/hasbyte1/go-collections/collections"
)

// Filter may rewrite a message before it reaches the adapter. Returning
// false drops the message.
type Filter func(name, message string) (string, bool)

// Config describes one named log destination.
type Config struct {
	// Adapter receives the messages. When nil, Type selects a built-in
	// adapter ("file", "zerolog" or "slog").
	Adapter Adapter

	// Type names the built-in adapter to use when Adapter is nil.
	Type string

	// Filters run in order before every write.
	Filters []Filter

	name string
}

// Name returns the destination name the config was stored under.
func (c Config) Name() string { return c.name }

// Write passes message through the filters and on to the adapter.
func (c Config) Write(message string) error {
	for _, f := range c.Filters {
		var ok bool
		if message, ok = f(c.name, message); !ok {
			return nil
		}
	}
	if c.Adapter == nil {
		return errors.Wrapf(ErrNoAdapter, "audit: config %q", c.name)
	}
	return c.Adapter.Write(c.name, message)
}

// Logger holds named log destinations in configuration order.
// It is not safe for concurrent reconfiguration.
type Logger struct {
	opts    Options
	configs *collections.Collection[Config]
}

// New creates a Logger with no destinations.
func New(opts Options) *Logger {
	opts = opts.withDefaults()
	return &Logger{
		opts:    opts,
		configs: collections.Empty[Config](collections.WithLogger(opts.Logger)),
	}
}

// Config adds or replaces destinations and returns the full set. Calling it
// without arguments only returns the current set.
//
// Named adapters are resolved here, so a bad Type is reported before any
// write. On error no destination is changed.
func (l *Logger) Config(configs ...collections.Pair[collections.Key, Config]) (*collections.Collection[Config], error) {
	resolved := make([]collections.Pair[collections.Key, Config], 0, len(configs))
	for _, p := range configs {
		cfg := p.Second
		cfg.name = p.First.String()
		if cfg.Adapter == nil {
			a, err := newAdapter(cfg.Type, l.opts)
			if err != nil {
				return l.configs, errors.Wrapf(err, "audit: config %q", cfg.name)
			}
			cfg.Adapter = a
		}
		resolved = append(resolved, collections.NewPair(p.First, cfg))
	}
	for _, p := range resolved {
		if _, err := l.configs.Set(p.First, p.Second); err != nil {
			return l.configs, err
		}
	}
	return l.configs, nil
}

// Reset removes every destination.
func (l *Logger) Reset() {
	l.configs.Clear()
}

// Write sends message to the named destination. Writing to an unknown name
// fails with an error matching collections.ErrKeyNotFound.
func (l *Logger) Write(name, message string) error {
	cfg, err := l.configs.Get(name)
	if err != nil {
		return errors.Wrap(err, "audit")
	}
	if err := cfg.Write(message); err != nil {
		l.opts.Logger.Warn("audit: write failed", "logger", name, "error", err)
		return err
	}
	return nil
}

// Broadcast sends message to every destination, in configuration order.
// A failing destination does not stop the others; all failures are returned
// combined.
func (l *Logger) Broadcast(message string) error {
	_, err := l.configs.Invoke("Write", []any{message}, collections.ContinueOnError())
	return err
}
