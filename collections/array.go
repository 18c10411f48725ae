package collections

import (
	"encoding"
	"encoding/json"
	"reflect"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Arrayer is implemented by values that know how to convert themselves to
// their array form (see [Collection.ToArray]).
type Arrayer interface {
	ToArray() any
}

// Entry is a single key/value pair of an [Entries] mapping.
type Entry = Pair[Key, any]

// Entries is an ordered mapping, the array form of a collection whose keys
// are not 0 … n-1. It marshals to JSON objects and YAML mappings in order.
type Entries []Entry

// Get returns the value stored under key.
func (e Entries) Get(key any) (any, bool) {
	k, err := KeyOf(key)
	if err != nil {
		return nil, false
	}
	for _, entry := range e {
		if entry.First == k {
			return entry.Second, true
		}
	}
	return nil, false
}

// Keys returns the keys in order.
func (e Entries) Keys() []Key {
	out := make([]Key, len(e))
	for i, entry := range e {
		out[i] = entry.First
	}
	return out
}

// Values returns the values in order.
func (e Entries) Values() []any {
	out := make([]any, len(e))
	for i, entry := range e {
		out[i] = entry.Second
	}
	return out
}

// Map returns the entries as a map keyed by the string form of each key,
// recursively converting nested Entries. Order is lost.
func (e Entries) Map() map[string]any {
	out := make(map[string]any, len(e))
	for _, entry := range e {
		out[entry.First.String()] = plain(entry.Second)
	}
	return out
}

func plain(v any) any {
	switch x := v.(type) {
	case Entries:
		return x.Map()
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = plain(item)
		}
		return out
	}
	return v
}

// ToArray converts the collection to plain data.
//
// The result is a []any when the keys are exactly 0 … n-1 in that order, and
// [Entries] otherwise. Every item is converted as follows:
//
//   - an [Arrayer] (including a nested collection) converts itself;
//   - a struct, or a pointer to one, becomes Entries of its exported fields,
//     one level deep, named after their `mapstructure` tag if present;
//   - values implementing json.Marshaler or encoding.TextMarshaler, and
//     everything else, are kept as they are.
func (c *Collection[T]) ToArray() any {
	entries := make(Entries, 0, c.Count())
	dense := true
	i := 0
	for k, item := range c.All() {
		if n, ok := k.Int(); !ok || n != i {
			dense = false
		}
		entries = append(entries, Entry{First: k, Second: toArray(item)})
		i++
	}
	if dense {
		return entries.Values()
	}
	return entries
}

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

func toArray(v any) any {
	if v == nil {
		return nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return v
	}
	if a, ok := v.(Arrayer); ok {
		return a.ToArray()
	}
	rv := reflect.ValueOf(v)
	if rv.Type().Implements(jsonMarshalerType) || rv.Type().Implements(textMarshalerType) {
		return v
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return v
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return v
	}
	return structEntries(rv)
}

func structEntries(rv reflect.Value) Entries {
	rt := rv.Type()
	out := make(Entries, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("mapstructure"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		out = append(out, Entry{First: StringKey(name), Second: rv.Field(i).Interface()})
	}
	return out
}

// FromArray rebuilds a collection from the array form of one: a []any (keys
// 0 … n-1), an [Entries] value (keys preserved), or a map[string]any (keys in
// sorted order). Nested values are stored as they are.
//
//	copy, _ := collections.FromArray(c.ToArray())
func FromArray(v any, opts ...Option) (*Collection[any], error) {
	switch x := v.(type) {
	case []any:
		return From(x, opts...), nil
	case Entries:
		return FromPairs([]Pair[Key, any](x), opts...), nil
	case map[string]any:
		names := make([]string, 0, len(x))
		for name := range x {
			names = append(names, name)
		}
		sort.Strings(names)
		c := Empty[any](opts...)
		for _, name := range names {
			c.put(StringKey(name), x[name])
		}
		return c, nil
	}
	return nil, errors.Wrapf(ErrNotAnArray, "got %T", v)
}

// Decode converts every item of c into a T, keeping keys and order.
//
// Items in array form (Entries, map[string]any, []any) are decoded with
// mapstructure, matching struct fields by name or `mapstructure` tag, with
// weak typing enabled ("1" decodes into an int field).
//
//	users, err := collections.Decode[User](raw)
func Decode[T any](c *Collection[any]) (*Collection[T], error) {
	out := derive[T](c)
	for k, item := range c.All() {
		var v T
		if typed, ok := item.(T); ok {
			v = typed
		} else {
			dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				Result:           &v,
				WeaklyTypedInput: true,
			})
			if err != nil {
				return nil, errors.Wrap(err, "collections: decoder")
			}
			if err := dec.Decode(plain(item)); err != nil {
				return nil, errors.Wrapf(err, "collections: decode key %q", k.String())
			}
		}
		out.put(k, v)
	}
	return out, nil
}
