// Package collections provides Collection, an ordered and keyed container
// that works as an indexable sequence, as a cursor-driven iterator and as a
// proxy forwarding method calls to every element it holds.
//
// # Keys and order
//
// Items live under a [Key], an integer or a string. Insertion order is kept
// and drives every traversal. Append assigns the next integer key, one past
// the largest integer key present. The strings "0", "1", … name the same
// items as the integers 0, 1, …:
//
//	c := collections.New("foo", "bar")
//	_, _ = c.Set("baz", "dib")
//	c.Exists("0")  // true
//	c.Keys()       // [0 1 baz]
//
// # Cursor
//
// Rewind, Next, Prev, End, Current, Key and Valid walk the items one at a
// time. Walking off either end is not an error: the call returns the zero
// value and false and Valid reports false.
//
// # Dispatch
//
// Invoke forwards a method call to every element and collects the results in
// order:
//
//	marked, err := records.Invoke("Mark", nil)                  // []any
//	saved, err := records.InvokeCollect("Save", []any{ctx})     // *Collection[any]
//	tags, err := records.Invoke("Tags", nil, collections.Merge()) // flattened
//
// Elements implementing [Dispatcher] resolve the call themselves; others are
// called through reflection. Apply is the statically typed equivalent.
//
// # Conversion
//
// ToArray turns a collection into plain data ([]any or [Entries]); To encodes
// it with a named [Format] from a [Formats] registry (json and yaml are
// built in) and Parse decodes it back.
//
// # Type-transforming operations
//
// Go generics do not allow methods to introduce new type parameters, so
// operations that change the element type are package-level functions:
// [Map], [MapValues], [Reduce], [Pluck], [GroupBy], [KeyBy], [Apply],
// [ApplyCollect] and [Decode].
package collections
