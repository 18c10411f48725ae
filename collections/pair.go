package collections

import "fmt"

// Pair holds two values of possibly different types.
//
// Collections use Pair[Key, T] for their key/value entries; see
// [Collection.Pairs] and [FromPairs].
type Pair[A, B any] struct {
	First  A
	Second B
}

// NewPair builds a Pair.
func NewPair[A, B any](first A, second B) Pair[A, B] {
	return Pair[A, B]{First: first, Second: second}
}

// KV builds a Pair[Key, T] from a loosely typed key (see [KeyOf]).
// It panics on an invalid key, which makes it suitable for literals only.
func KV[T any](key any, value T) Pair[Key, T] {
	k, err := KeyOf(key)
	if err != nil {
		panic(err)
	}
	return Pair[Key, T]{First: k, Second: value}
}

// String returns a human-readable representation: "(first, second)".
func (p Pair[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", p.First, p.Second)
}
