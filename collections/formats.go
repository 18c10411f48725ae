package collections

import (
	"bytes"
	"io"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// FormatArray is the built-in format handled by the collection itself.
const FormatArray = "array"

// Names of the formats registered by [NewFormats].
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Format is a named encode/decode strategy used by [Collection.To] and
// [Parse].
//
// Encode receives the array form of a collection (see [Collection.ToArray]):
// a []any or an [Entries] value whose leaves may be any Go value. Decode
// receives raw input ([]byte, string or io.Reader) and must return an array
// form that [FromArray] accepts.
type Format interface {
	Encode(array any, opts FormatOptions) (any, error)
	Decode(data any, opts FormatOptions) (any, error)
}

// FormatFuncs adapts a pair of functions to [Format]. A nil DecodeFunc makes
// the format encode-only.
type FormatFuncs struct {
	EncodeFunc func(array any, opts FormatOptions) (any, error)
	DecodeFunc func(data any, opts FormatOptions) (any, error)
}

func (f FormatFuncs) Encode(array any, opts FormatOptions) (any, error) {
	return f.EncodeFunc(array, opts)
}

func (f FormatFuncs) Decode(data any, opts FormatOptions) (any, error) {
	if f.DecodeFunc == nil {
		return nil, errors.New("collections: format cannot decode")
	}
	return f.DecodeFunc(data, opts)
}

// FormatOptions carries per-call settings to a [Format].
type FormatOptions map[string]any

// IntValue returns the integer option name, or 0.
func (o FormatOptions) IntValue(name string) int {
	n, _ := o[name].(int)
	return n
}

// StringValue returns the string option name, or "".
func (o FormatOptions) StringValue(name string) string {
	s, _ := o[name].(string)
	return s
}

// FormatOption sets a [FormatOptions] entry.
type FormatOption func(FormatOptions)

// Indent asks text formats to indent nested levels by n spaces.
func Indent(n int) FormatOption {
	return func(o FormatOptions) { o["indent"] = n }
}

// WithFormatOption sets an arbitrary option for custom formats.
func WithFormatOption(name string, value any) FormatOption {
	return func(o FormatOptions) { o[name] = value }
}

// Formats is a goroutine-safe registry of named [Format] strategies. The zero
// value is an empty registry; [NewFormats] also registers json and yaml.
//
// Collections consult the registry given with [WithFormats], or
// [DefaultFormats]. Register custom formats at startup:
//
//	reg := collections.NewFormats()
//	_ = reg.Register("csv", collections.FormatFuncs{EncodeFunc: encodeCSV})
//	c := collections.From(rows, collections.WithFormats(reg))
//	out, err := c.To("csv")
type Formats struct {
	mu      sync.RWMutex
	formats map[string]Format
}

// DefaultFormats is the registry used by collections built without
// [WithFormats]. It starts with the json and yaml formats.
var DefaultFormats = NewFormats()

// NewFormats creates a registry holding the built-in json and yaml formats.
func NewFormats() *Formats {
	f := &Formats{}
	f.Reset()
	return f
}

// Register adds a named format, replacing any format of that name.
func (f *Formats) Register(name string, format Format) error {
	switch {
	case name == "":
		return ErrEmptyFormatName
	case name == FormatArray:
		return errors.Wrapf(ErrReservedFormat, "%q", name)
	case format == nil:
		return ErrNilFormat
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.formats == nil {
		f.formats = map[string]Format{}
	}
	f.formats[name] = format
	return nil
}

// Unregister removes a named format. It is a no-op for unknown names.
func (f *Formats) Unregister(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.formats, name)
}

// Lookup returns the format registered under name.
func (f *Formats) Lookup(name string) (Format, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	format, ok := f.formats[name]
	return format, ok
}

// Has reports whether a format is registered under name. The built-in array
// format is always available and is not reported here.
func (f *Formats) Has(name string) bool {
	_, ok := f.Lookup(name)
	return ok
}

// Names returns the registered format names, sorted.
func (f *Formats) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.formats))
	for name := range f.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset drops custom formats and restores the built-in ones.
// Intended for use in tests.
func (f *Formats) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.formats = map[string]Format{
		FormatJSON: jsonFormat{},
		FormatYAML: yamlFormat{},
	}
}

// To converts the collection to the named format.
//
// "array" returns [Collection.ToArray]. Other names are looked up in the
// collection's format registry and encoded from the array form. An unknown
// name is not an error: To returns nil, nil. Encoding failures are returned.
//
//	s, err := c.To("json")          // string
//	s, err := c.To("yaml", collections.Indent(2))
func (c *Collection[T]) To(name string, opts ...FormatOption) (any, error) {
	if name == FormatArray {
		return c.ToArray(), nil
	}
	format, ok := c.formats.Lookup(name)
	if !ok {
		c.logger.Debug("collections: unknown format", "format", name)
		return nil, nil
	}
	o := FormatOptions{}
	for _, opt := range opts {
		opt(o)
	}
	out, err := format.Encode(c.ToArray(), o)
	if err != nil {
		return nil, errors.Wrapf(err, "collections: encode %s", name)
	}
	return out, nil
}

// Parse decodes data with the named format into a collection, preserving the
// key order of the input. Unlike [Collection.To], an unknown format is an
// error ([ErrFormatNotFound]). The registry is taken from opts, as for every
// constructor.
//
//	c, err := collections.Parse("json", `{"0":"a","name":"b"}`)
func Parse(name string, data any, opts ...Option) (*Collection[any], error) {
	if name == FormatArray {
		return FromArray(data, opts...)
	}
	o := buildOptions(opts)
	format, ok := o.formats.Lookup(name)
	if !ok {
		return nil, errors.Wrapf(ErrFormatNotFound, "%q", name)
	}
	array, err := format.Decode(data, FormatOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "collections: decode %s", name)
	}
	return FromArray(array, opts...)
}

// readData accepts the raw input types every built-in format understands.
func readData(data any) ([]byte, error) {
	switch d := data.(type) {
	case []byte:
		return d, nil
	case string:
		return []byte(d), nil
	case io.Reader:
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(d); err != nil {
			return nil, errors.Wrap(err, "collections: read input")
		}
		return buf.Bytes(), nil
	}
	return nil, errors.Errorf("collections: cannot decode %T", data)
}
