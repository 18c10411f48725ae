package collections

import "strings"

// Dig reads a nested value using a dot-separated key path. Each segment is
// a key (see [KeyOf]) looked up in the current level, which may be a
// Collection, [Entries], []any or map[string]any. Values found below a
// collection are in array form (see [Collection.ToArray]).
//
//	c.Dig("foo.baz")   // "dib"
//	c.Dig("users.0.name")
func (c *Collection[T]) Dig(path string) (any, bool) {
	return dig(c, strings.Split(path, "."))
}

// Dig is [Collection.Dig] for a value in array form.
func (e Entries) Dig(path string) (any, bool) {
	return dig(e, strings.Split(path, "."))
}

func dig(v any, segments []string) (any, bool) {
	current := v
	for _, seg := range segments {
		next, ok := child(current, seg)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func child(v any, seg string) (any, bool) {
	switch x := v.(type) {
	case map[string]any:
		val, ok := x[seg]
		return val, ok
	case []any:
		n, ok := StringKey(seg).Int()
		if !ok || n < 0 || n >= len(x) {
			return nil, false
		}
		return x[n], true
	case Entries:
		return x.Get(seg)
	case Arrayer:
		return child(x.ToArray(), seg)
	}
	return nil, false
}

// Dot flattens the array form of c into a single level keyed by dot paths,
// in depth-first key order. Empty nested levels are kept as leaves.
//
//	collections.New[any]("a", collections.New("b")).Dot()
//	// Entries{"0": "a", "1.0": "b"}
func (c *Collection[T]) Dot() Entries {
	out := Entries{}
	dotFlatten("", c.ToArray(), &out)
	return out
}

func dotFlatten(prefix string, v any, out *Entries) {
	var entries Entries
	switch x := v.(type) {
	case Entries:
		entries = x
	case []any:
		entries = make(Entries, len(x))
		for i, item := range x {
			entries[i] = Entry{First: IntKey(i), Second: item}
		}
	}
	if len(entries) == 0 {
		if prefix != "" {
			*out = append(*out, Entry{First: StringKey(prefix), Second: v})
		}
		return
	}
	for _, e := range entries {
		key := e.First.String()
		if prefix != "" {
			key = prefix + "." + key
		}
		dotFlatten(key, e.Second, out)
	}
}
