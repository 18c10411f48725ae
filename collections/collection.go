package collections

import (
	"iter"
	"log/slog"
	"math"

	"github.com/emirpasic/gods/v2/maps/linkedhashmap"
)

// Collection is an ordered, keyed container of T.
//
// Items are stored under a [Key] (integer or string) and keep their insertion
// order. Besides indexed access a Collection offers:
//
//   - a cursor (Rewind/Next/Prev/End/Current/Key/Valid) for stateful traversal;
//   - dispatch (Invoke/InvokeCollect/Dispatch) that forwards a method call to
//     every item and collects the per-item results;
//   - filters (Find/First/Each/Map);
//   - conversion to plain arrays and to registered text formats (To).
//
// # Creating a collection
//
//	c := collections.New("foo", "bar")                       // keys 0, 1
//	c := collections.From([]int{1, 2, 3})
//	c := collections.FromPairs([]collections.Pair[collections.Key, string]{
//	    collections.KV(0, "foo"), collections.KV("baz", "dib"),
//	})
//	c := collections.Empty[*Record](collections.WithLogger(logger))
//
// # Concurrency
//
// A Collection is not safe for concurrent use. The cursor in particular is
// shared state: two goroutines traversing the same instance interfere even
// when neither writes. Guard an instance with your own lock if it is shared.
type Collection[T any] struct {
	items *linkedhashmap.Map[Key, T]

	// order and pos index the keys of items by position. They are rebuilt
	// lazily after a removal (stale == true).
	order []Key
	pos   map[Key]int
	stale bool

	// next is the key assigned by Append: one past the largest integer key.
	next int

	cur cursor

	formats *Formats
	logger  *slog.Logger
}

// ─────────────────────────────────────────────────────────────────────────────
// Options
// ─────────────────────────────────────────────────────────────────────────────

// Option configures a Collection at construction time.
// Collections derived from it (Find, Map, InvokeCollect, …) inherit the same
// configuration.
type Option func(*options)

type options struct {
	formats *Formats
	logger  *slog.Logger
}

// WithFormats selects the format registry consulted by [Collection.To].
// Defaults to [DefaultFormats].
func WithFormats(f *Formats) Option {
	return func(o *options) {
		if f != nil {
			o.formats = f
		}
	}
}

// WithLogger sets the logger used for debug output (skipped dispatch
// failures, unknown formats). Defaults to a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		formats: DefaultFormats,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

func newCollection[T any](o options) *Collection[T] {
	return &Collection[T]{
		items:   linkedhashmap.New[Key, T](),
		order:   []Key{},
		pos:     map[Key]int{},
		formats: o.formats,
		logger:  o.logger,
	}
}

// derive returns an empty collection sharing c's configuration.
func derive[U, T any](c *Collection[T]) *Collection[U] {
	return newCollection[U](options{formats: c.formats, logger: c.logger})
}

// New creates a Collection holding items under the keys 0 … len(items)-1.
func New[T any](items ...T) *Collection[T] {
	return From(items)
}

// From creates a Collection from a slice under the keys 0 … len(items)-1.
func From[T any](items []T, opts ...Option) *Collection[T] {
	c := newCollection[T](buildOptions(opts))
	for _, item := range items {
		c.Append(item)
	}
	return c
}

// FromPairs creates a Collection from key/value pairs, in order.
// A key that appears more than once keeps its first position and its last
// value.
func FromPairs[T any](pairs []Pair[Key, T], opts ...Option) *Collection[T] {
	c := newCollection[T](buildOptions(opts))
	for _, p := range pairs {
		c.put(p.First, p.Second)
	}
	return c
}

// Empty creates an empty Collection of type T.
func Empty[T any](opts ...Option) *Collection[T] {
	return newCollection[T](buildOptions(opts))
}

// ─────────────────────────────────────────────────────────────────────────────
// Indexed access
// ─────────────────────────────────────────────────────────────────────────────

// Count returns the number of items in the collection.
func (c *Collection[T]) Count() int { return c.items.Size() }

// IsEmpty reports whether the collection contains no items.
func (c *Collection[T]) IsEmpty() bool { return c.items.Empty() }

// Get returns the item stored under key.
// It fails with a [*KeyNotFoundError] when key is absent and with an
// [*InvalidKeyError] when key is not an integer or a string.
func (c *Collection[T]) Get(key any) (T, error) {
	var zero T
	k, err := KeyOf(key)
	if err != nil {
		return zero, err
	}
	v, found := c.items.Get(k)
	if !found {
		return zero, &KeyNotFoundError{Key: k}
	}
	return v, nil
}

// Lookup returns the item stored under key together with a presence flag.
func (c *Collection[T]) Lookup(key any) (T, bool) {
	v, err := c.Get(key)
	return v, err == nil
}

// Exists reports whether key is present. "0" and 0 denote the same key.
func (c *Collection[T]) Exists(key any) bool {
	k, err := KeyOf(key)
	if err != nil {
		return false
	}
	_, found := c.items.Get(k)
	return found
}

// Set stores value under key and returns the key used.
// A nil key appends, exactly like [Collection.Append]. Setting an existing
// key replaces its value in place without changing its position.
func (c *Collection[T]) Set(key any, value T) (Key, error) {
	if key == nil {
		return c.Append(value), nil
	}
	k, err := KeyOf(key)
	if err != nil {
		return Key{}, err
	}
	c.put(k, value)
	return k, nil
}

// Append stores value under the next integer key, one past the largest
// integer key currently present (0 when there is none), and returns that key.
func (c *Collection[T]) Append(value T) Key {
	k := IntKey(c.next)
	c.put(k, value)
	return k
}

// Remove deletes key and reports whether it was present.
// If the cursor was on key it becomes invalid until the next Rewind or End.
func (c *Collection[T]) Remove(key any) bool {
	k, err := KeyOf(key)
	if err != nil {
		return false
	}
	if _, found := c.items.Get(k); !found {
		return false
	}
	c.items.Remove(k)

	if !c.stale && len(c.order) > 0 && c.order[len(c.order)-1] == k {
		c.order = c.order[:len(c.order)-1]
		delete(c.pos, k)
	} else {
		c.stale, c.order, c.pos = true, nil, nil
	}

	if c.cur.state == cursorAt && c.cur.key == k {
		c.cur = cursor{state: cursorDetached}
	}
	if n, ok := k.Int(); ok && n == c.next-1 {
		c.next = c.nextIntKey()
	}
	return true
}

// Clear removes every item and resets the cursor and the append counter.
func (c *Collection[T]) Clear() {
	c.items.Clear()
	c.order, c.pos, c.stale = []Key{}, map[Key]int{}, false
	c.next = 0
	c.cur = cursor{}
}

// Keys returns a snapshot of the keys in order.
func (c *Collection[T]) Keys() []Key {
	order := c.index()
	out := make([]Key, len(order))
	copy(out, order)
	return out
}

// Values returns the items in order as a plain slice.
func (c *Collection[T]) Values() []T {
	return c.items.Values()
}

// ToSlice is an alias for [Collection.Values].
func (c *Collection[T]) ToSlice() []T { return c.Values() }

// Pairs returns the key/value entries in order.
func (c *Collection[T]) Pairs() []Pair[Key, T] {
	out := make([]Pair[Key, T], 0, c.items.Size())
	it := c.items.Iterator()
	for it.Next() {
		out = append(out, Pair[Key, T]{First: it.Key(), Second: it.Value()})
	}
	return out
}

// All returns an iterator over the key/value entries in order. It does not
// touch the cursor. Keys removed during the iteration are skipped.
//
//	for k, v := range c.All() {
//	    fmt.Println(k, v)
//	}
func (c *Collection[T]) All() iter.Seq2[Key, T] {
	return func(yield func(Key, T) bool) {
		for _, k := range c.Keys() {
			v, found := c.items.Get(k)
			if !found {
				continue
			}
			if !yield(k, v) {
				return
			}
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Internals
// ─────────────────────────────────────────────────────────────────────────────

func (c *Collection[T]) put(k Key, v T) {
	if _, found := c.items.Get(k); !found && !c.stale {
		c.pos[k] = len(c.order)
		c.order = append(c.order, k)
	}
	c.items.Put(k, v)
	if n, ok := k.Int(); ok && n >= c.next && n < math.MaxInt {
		c.next = n + 1
	}
}

// index returns the positional key index, rebuilding it if needed.
func (c *Collection[T]) index() []Key {
	if c.stale {
		c.order = c.items.Keys()
		c.pos = make(map[Key]int, len(c.order))
		for i, k := range c.order {
			c.pos[k] = i
		}
		c.stale = false
	}
	return c.order
}

func (c *Collection[T]) nextIntKey() int {
	next := 0
	for _, k := range c.index() {
		if n, ok := k.Int(); ok && n >= next && n < math.MaxInt {
			next = n + 1
		}
	}
	return next
}
