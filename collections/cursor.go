package collections

type cursorState uint8

const (
	// cursorHead follows the first key, whatever it currently is. It is the
	// state of a fresh collection.
	cursorHead cursorState = iota
	cursorAt
	cursorBeforeStart
	cursorPastEnd
	// cursorDetached means the key under the cursor was removed.
	cursorDetached
)

type cursor struct {
	state cursorState
	key   Key
}

// position returns the index of the cursor in the key order.
func (c *Collection[T]) position() (int, bool) {
	order := c.index()
	switch c.cur.state {
	case cursorHead:
		return 0, len(order) > 0
	case cursorAt:
		i, ok := c.pos[c.cur.key]
		return i, ok
	}
	return 0, false
}

func (c *Collection[T]) moveTo(i int) (T, bool) {
	k := c.order[i]
	c.cur = cursor{state: cursorAt, key: k}
	v, _ := c.items.Get(k)
	return v, true
}

// Valid reports whether the cursor is on an existing item.
func (c *Collection[T]) Valid() bool {
	_, ok := c.position()
	return ok
}

// Key returns the key under the cursor. It returns false when the cursor is
// not valid.
func (c *Collection[T]) Key() (Key, bool) {
	i, ok := c.position()
	if !ok {
		return Key{}, false
	}
	return c.order[i], true
}

// Current returns the item under the cursor without moving it.
// It returns the zero value and false when the cursor is not valid.
func (c *Collection[T]) Current() (T, bool) {
	var zero T
	i, ok := c.position()
	if !ok {
		return zero, false
	}
	v, _ := c.items.Get(c.order[i])
	return v, true
}

// Rewind moves the cursor to the first item and returns it.
// On an empty collection it returns the zero value and false; the cursor then
// follows whatever item is added first.
func (c *Collection[T]) Rewind() (T, bool) {
	var zero T
	if len(c.index()) == 0 {
		c.cur = cursor{}
		return zero, false
	}
	return c.moveTo(0)
}

// End moves the cursor to the last item and returns it.
// On an empty collection it behaves like [Collection.Rewind].
func (c *Collection[T]) End() (T, bool) {
	order := c.index()
	if len(order) == 0 {
		return c.Rewind()
	}
	return c.moveTo(len(order) - 1)
}

// Next advances the cursor and returns the new item.
// Past the last item it returns the zero value and false, and keeps doing so
// on further calls. From before the first item it moves to the first item.
func (c *Collection[T]) Next() (T, bool) {
	var zero T
	order := c.index()
	switch c.cur.state {
	case cursorBeforeStart:
		if len(order) == 0 {
			return zero, false
		}
		return c.moveTo(0)
	case cursorPastEnd, cursorDetached:
		return zero, false
	}
	i, ok := c.position()
	if !ok {
		return zero, false
	}
	if i+1 >= len(order) {
		c.cur = cursor{state: cursorPastEnd}
		return zero, false
	}
	return c.moveTo(i + 1)
}

// Prev moves the cursor back and returns the new item.
// Before the first item it returns the zero value and false, and keeps doing
// so on further calls. From past the last item it moves to the last item.
func (c *Collection[T]) Prev() (T, bool) {
	var zero T
	order := c.index()
	switch c.cur.state {
	case cursorPastEnd:
		if len(order) == 0 {
			return zero, false
		}
		return c.moveTo(len(order) - 1)
	case cursorBeforeStart, cursorDetached:
		return zero, false
	}
	i, ok := c.position()
	if !ok {
		return zero, false
	}
	if i == 0 {
		c.cur = cursor{state: cursorBeforeStart}
		return zero, false
	}
	return c.moveTo(i - 1)
}
