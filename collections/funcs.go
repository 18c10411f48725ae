package collections

// This file contains package-level generic functions for operations that
// transform a Collection[T] into a Collection[U].
//
// Go generics do not allow methods to introduce their own type parameters, so
// these operations are stand-alone functions. They compose with method calls:
//
//	labels := collections.Map(
//	    users.Find(func(u *User) bool { return u.Active }),
//	    func(u *User) string { return u.Name },
//	)

// Map applies fn to every item and returns a new Collection[U] that keeps the
// original keys.
func Map[T, U any](c *Collection[T], fn func(T) U) *Collection[U] {
	out := derive[U](c)
	for k, item := range c.All() {
		out.put(k, fn(item))
	}
	return out
}

// MapValues applies fn to every item and returns the results as a slice.
func MapValues[T, U any](c *Collection[T], fn func(T) U) []U {
	out := make([]U, 0, c.Count())
	for _, item := range c.All() {
		out = append(out, fn(item))
	}
	return out
}

// Reduce folds the items of c, in order, into a value of type U.
//
//	total := collections.Reduce(orders,
//	    func(sum float64, o Order, _ collections.Key) float64 { return sum + o.Total }, 0)
func Reduce[T, U any](c *Collection[T], fn func(U, T, Key) U, initial U) U {
	result := initial
	for k, item := range c.All() {
		result = fn(result, item, k)
	}
	return result
}

// Pluck extracts a value from every item, keeping the keys.
//
//	names := collections.Pluck(users, func(u User) string { return u.Name })
func Pluck[T, U any](c *Collection[T], fn func(T) U) *Collection[U] {
	return Map(c, fn)
}

// GroupBy groups items by the comparable key extracted by fn. Each group keeps
// the original keys and order of its items.
func GroupBy[T any, G comparable](c *Collection[T], fn func(T) G) map[G]*Collection[T] {
	groups := make(map[G]*Collection[T])
	for k, item := range c.All() {
		g := fn(item)
		if groups[g] == nil {
			groups[g] = derive[T](c)
		}
		groups[g].put(k, item)
	}
	return groups
}

// KeyBy re-keys the items by the key extracted by fn. When several items map
// to the same key the first position and the last item win.
func KeyBy[T any](c *Collection[T], fn func(T) Key) *Collection[T] {
	out := derive[T](c)
	for _, item := range c.All() {
		out.put(fn(item), item)
	}
	return out
}
