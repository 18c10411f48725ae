package collections_test

import (
	"errors"
	"testing"

	"github.com/hasbyte1/go-collections/collections"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func ints(ns ...int) *collections.Collection[int] { return collections.New(ns...) }

// mixed returns {0: "foo", 1: "bar", "baz": "dib"}.
func mixed() *collections.Collection[string] {
	return collections.FromPairs([]collections.Pair[collections.Key, string]{
		collections.KV(0, "foo"),
		collections.KV(1, "bar"),
		collections.KV("baz", "dib"),
	})
}

func keys(ks ...any) []collections.Key {
	out := make([]collections.Key, len(ks))
	for i, k := range ks {
		key, err := collections.KeyOf(k)
		if err != nil {
			panic(err)
		}
		out[i] = key
	}
	return out
}

func assertSlice[T comparable](t *testing.T, got, want []T) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("slice length: got %d want %d  (got=%v want=%v)", len(got), len(want), got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

func TestNew(t *testing.T) {
	c := collections.New(1, 2, 3)
	assertSlice(t, c.Values(), []int{1, 2, 3})
	assertSlice(t, c.Keys(), keys(0, 1, 2))
}

func TestFrom(t *testing.T) {
	s := []string{"a", "b", "c"}
	c := collections.From(s)
	s[0] = "z" // mutate original – should not affect the collection
	if v, _ := c.Get(0); v != "a" {
		t.Fatal("From did not copy the slice")
	}
}

func TestEmpty(t *testing.T) {
	c := collections.Empty[int]()
	if c.Count() != 0 || !c.IsEmpty() {
		t.Fatal("empty collection should have Count 0")
	}
	if c.Valid() {
		t.Fatal("empty collection should not be valid")
	}
}

func TestFromPairsDuplicateKey(t *testing.T) {
	c := collections.FromPairs([]collections.Pair[collections.Key, string]{
		collections.KV("a", "1"),
		collections.KV("b", "2"),
		collections.KV("a", "3"),
	})
	assertSlice(t, c.Keys(), keys("a", "b"))
	if v, _ := c.Get("a"); v != "3" {
		t.Fatalf("Get(a) = %q; want last value 3", v)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Indexed access
// ─────────────────────────────────────────────────────────────────────────────

func TestArrayLike(t *testing.T) {
	c := collections.Empty[string]()
	if _, err := c.Set(nil, "foo"); err != nil {
		t.Fatal(err)
	}
	if v, err := c.Get(0); err != nil || v != "foo" {
		t.Fatalf("Get(0) = %q, %v; want foo", v, err)
	}
	if c.Count() != 1 {
		t.Fatalf("Count = %d; want 1", c.Count())
	}
}

func TestExistsLooseKeys(t *testing.T) {
	c := mixed()
	for _, k := range []any{0, 1, "0", "baz", int64(1), uint8(0)} {
		if !c.Exists(k) {
			t.Fatalf("Exists(%#v) = false; want true", k)
		}
	}
	for _, k := range []any{"2", "bar", 2, "00", 1.0, nil} {
		if c.Exists(k) {
			t.Fatalf("Exists(%#v) = true; want false", k)
		}
	}

	if _, err := c.Set("bar", "foo"); err != nil {
		t.Fatal(err)
	}
	if !c.Exists("bar") {
		t.Fatal("Exists(bar) after Set should be true")
	}
	if !c.Remove("bar") || c.Exists("bar") {
		t.Fatal("Remove(bar) should delete the key")
	}
}

func TestGetMissingKey(t *testing.T) {
	_, err := mixed().Get("nope")
	if !errors.Is(err, collections.ErrKeyNotFound) {
		t.Fatalf("err = %v; want ErrKeyNotFound", err)
	}
	var knf *collections.KeyNotFoundError
	if !errors.As(err, &knf) || knf.Key != collections.StringKey("nope") {
		t.Fatalf("err = %#v; want *KeyNotFoundError for nope", err)
	}
}

func TestGetInvalidKey(t *testing.T) {
	_, err := mixed().Get(3.5)
	if !errors.Is(err, collections.ErrInvalidKey) {
		t.Fatalf("err = %v; want ErrInvalidKey", err)
	}
	if _, err := mixed().Set([]int{1}, "x"); !errors.Is(err, collections.ErrInvalidKey) {
		t.Fatalf("Set err = %v; want ErrInvalidKey", err)
	}
}

func TestLookup(t *testing.T) {
	c := mixed()
	if v, ok := c.Lookup("baz"); !ok || v != "dib" {
		t.Fatalf("Lookup(baz) = %q, %v", v, ok)
	}
	if _, ok := c.Lookup(7); ok {
		t.Fatal("Lookup(7) should miss")
	}
}

func TestSetReplacesInPlace(t *testing.T) {
	c := mixed()
	if _, err := c.Set("0", "FOO"); err != nil {
		t.Fatal(err)
	}
	assertSlice(t, c.Keys(), keys(0, 1, "baz"))
	assertSlice(t, c.Values(), []string{"FOO", "bar", "dib"})
}

func TestAppendUsesNextIntegerKey(t *testing.T) {
	c := collections.FromPairs([]collections.Pair[collections.Key, int]{
		collections.KV("x", 1),
		collections.KV(5, 2),
	})
	if k := c.Append(3); k != collections.IntKey(6) {
		t.Fatalf("Append key = %v; want 6", k)
	}
	c.Remove(6)
	if k := c.Append(4); k != collections.IntKey(6) {
		t.Fatalf("Append after removing max key = %v; want 6", k)
	}
	c.Remove(6)
	c.Remove(5)
	if k := c.Append(5); k != collections.IntKey(0) {
		t.Fatalf("Append with no integer keys = %v; want 0", k)
	}
}

func TestAppendNegativeKeys(t *testing.T) {
	c := collections.FromPairs([]collections.Pair[collections.Key, int]{collections.KV(-3, 1)})
	if k := c.Append(2); k != collections.IntKey(0) {
		t.Fatalf("Append key = %v; want 0", k)
	}
}

func TestRemoveMissing(t *testing.T) {
	c := mixed()
	if c.Remove("nope") || c.Remove(struct{}{}) {
		t.Fatal("Remove of a missing key should report false")
	}
	if c.Count() != 3 {
		t.Fatalf("Count = %d; want 3", c.Count())
	}
}

func TestRemoveMiddleKeepsOrder(t *testing.T) {
	c := ints(10, 20, 30, 40)
	c.Remove(1)
	c.Append(50)
	assertSlice(t, c.Keys(), keys(0, 2, 3, 4))
	assertSlice(t, c.Values(), []int{10, 30, 40, 50})
}

func TestInternalKeys(t *testing.T) {
	assertSlice(t, mixed().Keys(), keys(0, 1, "baz"))
}

func TestKeysIsSnapshot(t *testing.T) {
	c := ints(1, 2)
	ks := c.Keys()
	ks[0] = collections.StringKey("changed")
	assertSlice(t, c.Keys(), keys(0, 1))
}

func TestOrderPreservation(t *testing.T) {
	pairs := []collections.Pair[collections.Key, int]{
		collections.KV("z", 1),
		collections.KV(9, 2),
		collections.KV("a", 3),
		collections.KV(-1, 4),
		collections.KV(0, 5),
	}
	c := collections.FromPairs(pairs)
	assertSlice(t, c.Keys(), keys("z", 9, "a", -1, 0))

	got := c.Pairs()
	for i := range pairs {
		if got[i] != pairs[i] {
			t.Fatalf("pair %d = %v; want %v", i, got[i], pairs[i])
		}
	}
}

func TestAllIterator(t *testing.T) {
	c := mixed()
	var got []string
	for k, v := range c.All() {
		got = append(got, k.String()+"="+v)
	}
	assertSlice(t, got, []string{"0=foo", "1=bar", "baz=dib"})

	got = got[:0]
	for k := range c.All() {
		got = append(got, k.String())
		break
	}
	assertSlice(t, got, []string{"0"})
}

func TestClear(t *testing.T) {
	c := mixed()
	c.Next()
	c.Clear()
	if c.Count() != 0 || c.Valid() {
		t.Fatal("Clear should empty the collection")
	}
	if k := c.Append("x"); k != collections.IntKey(0) {
		t.Fatalf("Append after Clear = %v; want 0", k)
	}
	if v, ok := c.Current(); !ok || v != "x" {
		t.Fatalf("Current after Clear+Append = %q, %v", v, ok)
	}
}
