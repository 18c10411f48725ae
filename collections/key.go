package collections

import (
	"math"
	"strconv"
)

// Key identifies an item inside a [Collection]. It is either an integer or a
// string, never both.
//
// Strings holding the canonical decimal form of an int ("0", "42", "-7")
// denote the integer key of the same value, so StringKey("0") == IntKey(0).
// Non-canonical forms such as "07", "+1", "-0" or " 1" stay string keys.
//
// Key is comparable and can be used as a map key.
type Key struct {
	str   string
	num   int
	isStr bool
}

// IntKey returns the integer key n.
func IntKey(n int) Key { return Key{num: n} }

// StringKey returns the key for s, normalising canonical integer strings to
// integer keys.
func StringKey(s string) Key {
	if n, ok := canonicalInt(s); ok {
		return Key{num: n}
	}
	return Key{str: s, isStr: true}
}

// KeyOf converts a caller-supplied key into a Key.
// Accepted inputs are Key, string and every integer kind whose value fits in
// an int. Anything else (including nil) yields [ErrInvalidKey].
func KeyOf(v any) (Key, error) {
	switch k := v.(type) {
	case Key:
		return k, nil
	case string:
		return StringKey(k), nil
	case int:
		return IntKey(k), nil
	case int8:
		return IntKey(int(k)), nil
	case int16:
		return IntKey(int(k)), nil
	case int32:
		return IntKey(int(k)), nil
	case int64:
		if k < math.MinInt || k > math.MaxInt {
			return Key{}, &InvalidKeyError{Value: v}
		}
		return IntKey(int(k)), nil
	case uint:
		return uintKey(uint64(k), v)
	case uint8:
		return IntKey(int(k)), nil
	case uint16:
		return IntKey(int(k)), nil
	case uint32:
		return uintKey(uint64(k), v)
	case uint64:
		return uintKey(k, v)
	}
	return Key{}, &InvalidKeyError{Value: v}
}

func uintKey(n uint64, orig any) (Key, error) {
	if n > math.MaxInt {
		return Key{}, &InvalidKeyError{Value: orig}
	}
	return IntKey(int(n)), nil
}

// IsInt reports whether k is an integer key.
func (k Key) IsInt() bool { return !k.isStr }

// IsString reports whether k is a string key.
func (k Key) IsString() bool { return k.isStr }

// Int returns the integer value of k and true, or 0 and false for string keys.
func (k Key) Int() (int, bool) {
	if k.isStr {
		return 0, false
	}
	return k.num, true
}

// String returns the textual form of k. Integer keys are rendered in base 10.
func (k Key) String() string {
	if k.isStr {
		return k.str
	}
	return strconv.Itoa(k.num)
}

// Equal reports whether k and other denote the same key.
func (k Key) Equal(other Key) bool { return k == other }

// Any returns k as an int or a string.
func (k Key) Any() any {
	if k.isStr {
		return k.str
	}
	return k.num
}

func canonicalInt(s string) (int, bool) {
	if s == "" || len(s) > 20 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if strconv.Itoa(n) != s {
		return 0, false
	}
	return n, true
}
