package collections

import "reflect"

// Every filter walks the items in key order, never in a sorted order, and
// keeps duplicates exactly as they are encountered.

// Find returns a new collection with the items for which fn returns true.
// Items keep their keys and relative order; c is not modified.
func (c *Collection[T]) Find(fn func(T) bool) *Collection[T] {
	out := derive[T](c)
	for k, item := range c.All() {
		if fn(item) {
			out.put(k, item)
		}
	}
	return out
}

// FindValues is [Collection.Find] returning a plain slice.
func (c *Collection[T]) FindValues(fn func(T) bool) []T {
	out := make([]T, 0)
	for _, item := range c.All() {
		if fn(item) {
			out = append(out, item)
		}
	}
	return out
}

// First returns the first item, optionally the first one matching fns[0].
//
// Without a predicate the very first item is returned even when it is a zero
// value; use First(Truthy[T]) for the first non-zero item. Returns the zero
// value and false when the collection is empty or nothing matches.
func (c *Collection[T]) First(fns ...func(T) bool) (T, bool) {
	var zero T
	for _, item := range c.All() {
		if len(fns) == 0 || fns[0](item) {
			return item, true
		}
	}
	return zero, false
}

// Last returns the last item, optionally the last one matching fns[0].
func (c *Collection[T]) Last(fns ...func(T) bool) (T, bool) {
	var zero T
	order := c.index()
	for i := len(order) - 1; i >= 0; i-- {
		item, _ := c.items.Get(order[i])
		if len(fns) == 0 || fns[0](item) {
			return item, true
		}
	}
	return zero, false
}

// Truthy reports whether v is not the zero value of its dynamic type.
// It is meant as a predicate for [Collection.First] and [Collection.Find].
func Truthy[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	return rv.IsValid() && !rv.IsZero()
}

// Each replaces every item with fn(item), in place, and returns c itself so
// that calls can be chained on the same instance.
func (c *Collection[T]) Each(fn func(T) T) *Collection[T] {
	for k, item := range c.All() {
		c.items.Put(k, fn(item))
	}
	return c
}

// EachErr is [Collection.Each] for a fallible fn. It stops at the first error.
// The update is not atomic: items before the failing one have already been
// replaced, the failing item and those after it are untouched.
func (c *Collection[T]) EachErr(fn func(T) (T, error)) (*Collection[T], error) {
	for k, item := range c.All() {
		v, err := fn(item)
		if err != nil {
			return c, err
		}
		c.items.Put(k, v)
	}
	return c, nil
}

// Walk calls fn(key, item) for every item without modifying anything.
func (c *Collection[T]) Walk(fn func(Key, T)) {
	for k, item := range c.All() {
		fn(k, item)
	}
}

// Map returns a new Collection[any] holding fn(item) under each item's key.
// c and its items are left untouched.
//
// For a typed result use the package-level [Map].
func (c *Collection[T]) Map(fn func(T) any) *Collection[any] {
	return Map(c, fn)
}

// MapValues is [Collection.Map] returning a plain slice.
func (c *Collection[T]) MapValues(fn func(T) any) []any {
	return MapValues(c, fn)
}

// Reduce folds the items, in order, into a single value of type T.
//
// For reductions that change the type use the package-level [Reduce].
func (c *Collection[T]) Reduce(fn func(carry, item T) T, initial T) T {
	return Reduce(c, func(carry T, item T, _ Key) T { return fn(carry, item) }, initial)
}
