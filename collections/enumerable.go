package collections

import "iter"

// The interfaces below describe the faces of [Collection] separately so that
// consumers can depend on the narrowest one they need. *Collection[T]
// satisfies all of them.

// ArrayAccess is the keyed, array-like surface of a collection.
type ArrayAccess[T any] interface {
	Get(key any) (T, error)
	Lookup(key any) (T, bool)
	Set(key any, value T) (Key, error)
	Append(value T) Key
	Exists(key any) bool
	Remove(key any) bool
	Count() int
	Keys() []Key
}

// Iterator is the cursor surface of a collection. A loop over it looks like:
//
//	for v, ok := c.Rewind(); ok; v, ok = c.Next() {
//	    k, _ := c.Key()
//	    fmt.Println(k, v)
//	}
type Iterator[T any] interface {
	Rewind() (T, bool)
	End() (T, bool)
	Current() (T, bool)
	Next() (T, bool)
	Prev() (T, bool)
	Key() (Key, bool)
	Valid() bool
}

// Enumerable is the read-only traversal surface of a collection.
type Enumerable[T any] interface {
	All() iter.Seq2[Key, T]
	Values() []T
	Count() int
	IsEmpty() bool
	First(fns ...func(T) bool) (T, bool)
	Last(fns ...func(T) bool) (T, bool)
	Find(fn func(T) bool) *Collection[T]
}

// Converter is the conversion surface of a collection.
type Converter interface {
	Arrayer
	To(name string, opts ...FormatOption) (any, error)
}

var (
	_ ArrayAccess[any] = (*Collection[any])(nil)
	_ Iterator[any]    = (*Collection[any])(nil)
	_ Enumerable[any]  = (*Collection[any])(nil)
	_ Converter        = (*Collection[any])(nil)
	_ Dispatcher       = (*Collection[any])(nil)
)
