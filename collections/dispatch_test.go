package collections_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"

	"github.com/hasbyte1/go-collections/collections"
)

type dispatchTest struct {
	Marker bool
	Data   string
}

func newDispatchTest() *dispatchTest { return &dispatchTest{Data: "foo"} }

func (d *dispatchTest) Mark() bool {
	d.Marker = true
	return true
}

func (d *dispatchTest) MapArray() []string { return []string{"foo"} }

// coreDispatchTest resolves every call itself.
type coreDispatchTest struct{}

func (coreDispatchTest) Dispatch(method string, _ ...any) (any, error) { return method, nil }

func (coreDispatchTest) ToArray() any {
	return collections.Entries{collections.KV[any](1, 2), collections.KV[any](2, 3)}
}

type counter struct{ n int }

func (c *counter) Add(delta int) int {
	c.n += delta
	return c.n
}

func (c *counter) Reset() { c.n = 0 }

func (c *counter) Join(sep string, parts ...string) string {
	return fmt.Sprint(c.n) + sep + strings.Join(parts, sep)
}

func (c *counter) Split() (int, int) { return c.n / 10, c.n % 10 }

func (c *counter) Check() (bool, error) {
	if c.n < 0 {
		return false, fmt.Errorf("counter %d is negative", c.n)
	}
	return true, nil
}

func counters(ns ...int) *collections.Collection[*counter] {
	c := collections.Empty[*counter]()
	for _, n := range ns {
		c.Append(&counter{n: n})
	}
	return c
}

func repeat(v any, n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestObjectMethodDispatch(t *testing.T) {
	c := collections.Empty[*dispatchTest]()
	for i := 0; i < 10; i++ {
		c.Append(newDispatchTest())
	}

	got, err := c.Invoke("Mark", nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(repeat(true, 10), got); diff != "" {
		t.Fatalf("Mark results (-want +got):\n%s", diff)
	}
	for _, d := range c.Values() {
		if !d.Marker {
			t.Fatal("Mark was not forwarded to every element")
		}
	}

	res, err := c.Dispatch("MapArray")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(repeat([]string{"foo"}, 10), res); diff != "" {
		t.Fatalf("MapArray results (-want +got):\n%s", diff)
	}

	got, err = c.Invoke("MapArray", nil, collections.Merge())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(repeat("foo", 10), got); diff != "" {
		t.Fatalf("merged MapArray results (-want +got):\n%s", diff)
	}
}

func TestDispatcherElements(t *testing.T) {
	c := collections.From(repeatCore(10))

	res, err := c.Dispatch("testFoo")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(repeat("testFoo", 10), res); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	collected, err := c.InvokeCollect("testFoo", nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(repeat("testFoo", 10), collected.ToArray()); diff != "" {
		t.Fatalf("collected (-want +got):\n%s", diff)
	}
}

func repeatCore(n int) []coreDispatchTest { return make([]coreDispatchTest, n) }

func TestCollectMatchesRaw(t *testing.T) {
	c := counters(1, 2, 3, 4)
	raw, err := c.Invoke("Add", []any{0})
	if err != nil {
		t.Fatal(err)
	}
	collected, err := c.InvokeCollect("Add", []any{0})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(raw, collected.ToArray()); diff != "" {
		t.Fatalf("(-raw +collected):\n%s", diff)
	}
}

func TestFanOutIdentity(t *testing.T) {
	c := counters(5, 6, 7)
	got, err := c.Invoke("Add", []any{10})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{15, 16, 17}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if c.Count() != 3 {
		t.Fatal("dispatch must not change the key set")
	}
}

func TestInvokeCollectKeepsKeys(t *testing.T) {
	c := collections.FromPairs([]collections.Pair[collections.Key, *counter]{
		collections.KV("a", &counter{n: 1}),
		collections.KV(7, &counter{n: 2}),
	})
	out, err := c.InvokeCollect("Add", []any{1})
	if err != nil {
		t.Fatal(err)
	}
	assertSlice(t, out.Keys(), keys("a", 7))
	assertSlice(t, out.Values(), []any{2, 3})

	merged, err := c.InvokeCollect("Split", nil, collections.Merge())
	if err != nil {
		t.Fatal(err)
	}
	assertSlice(t, merged.Keys(), keys(0, 1, 2, 3))
	assertSlice(t, merged.Values(), []any{0, 2, 0, 3})
}

func TestDispatchArguments(t *testing.T) {
	c := counters(1)

	if got, err := c.Invoke("Add", []any{int64(4)}); err != nil || got[0] != 5 {
		t.Fatalf("Add(int64) = %v, %v; want 5", got, err)
	}
	if got, err := c.Invoke("Join", []any{",", "a", "b"}); err != nil || got[0] != "5,a,b" {
		t.Fatalf("Join = %v, %v", got, err)
	}
	if got, err := c.Invoke("Join", []any{"-"}); err != nil || got[0] != "5-" {
		t.Fatalf("Join without variadic args = %v, %v", got, err)
	}
	if got, err := c.Invoke("Reset", nil); err != nil || got[0] != nil {
		t.Fatalf("Reset = %v, %v; want [nil]", got, err)
	}

	for name, args := range map[string][]any{
		"Add":  {"5"},
		"Join": {},
	} {
		if _, err := c.Invoke(name, args); !errors.Is(err, collections.ErrInvalidArgument) {
			t.Fatalf("%s%v: err = %v; want ErrInvalidArgument", name, args, err)
		}
	}
	if _, err := c.Invoke("Add", []any{1, 2}); !errors.Is(err, collections.ErrInvalidArgument) {
		t.Fatalf("too many args: err = %v", err)
	}
	if _, err := c.Invoke("Add", []any{nil}); !errors.Is(err, collections.ErrInvalidArgument) {
		t.Fatalf("nil int arg: err = %v", err)
	}
}

type narrow struct{}

func (narrow) Byte(b uint8) uint8 { return b }
func (narrow) Whole(n int) int { return n }
func (narrow) Unsigned(n uint64) uint64 { return n }
func (narrow) Half(f float32) float32 { return f }

func TestDispatchNumericArguments(t *testing.T) {
	c := collections.New(narrow{})

	for _, tc := range []struct {
		method string
		arg    any
		want   any
	}{
		{"Byte", 200, uint8(200)},
		{"Whole", int8(-3), -3},
		{"Whole", 4.0, 4},
		{"Unsigned", 7, uint64(7)},
		{"Half", 0.1, float32(0.1)},
		{"Half", 2, float32(2)},
	} {
		got, err := c.Invoke(tc.method, []any{tc.arg})
		if err != nil {
			t.Fatalf("%s(%#v): %v", tc.method, tc.arg, err)
		}
		if diff := cmp.Diff([]any{tc.want}, got); diff != "" {
			t.Fatalf("%s(%#v) (-want +got):\n%s", tc.method, tc.arg, diff)
		}
	}

	for _, tc := range []struct {
		method string
		arg    any
	}{
		{"Byte", 300},
		{"Byte", -1},
		{"Whole", 2.9},
		{"Unsigned", -1},
		{"Whole", uint64(1 << 63)},
		{"Half", 1e300},
	} {
		if got, err := c.Invoke(tc.method, []any{tc.arg}); !errors.Is(err, collections.ErrInvalidArgument) {
			t.Fatalf("%s(%#v) = %v, %v; want ErrInvalidArgument", tc.method, tc.arg, got, err)
		}
	}
}

func TestDispatchMultipleResults(t *testing.T) {
	got, err := counters(42, 7).Invoke("Split", nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{[]any{4, 2}, []any{0, 7}}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestDispatchFailFast(t *testing.T) {
	c := counters(1, -1, 2)
	got, err := c.Invoke("Check", nil)
	if err == nil || !strings.Contains(err.Error(), "negative") {
		t.Fatalf("err = %v; want the element error", err)
	}
	if diff := cmp.Diff([]any{true}, got); diff != "" {
		t.Fatalf("partial results (-want +got):\n%s", diff)
	}
}

func TestDispatchUnsupported(t *testing.T) {
	c := collections.FromPairs([]collections.Pair[collections.Key, any]{
		collections.KV[any](0, &counter{}),
		collections.KV[any]("x", 12),
	})
	_, err := c.Invoke("Add", []any{1})
	if !errors.Is(err, collections.ErrUnsupportedOperation) {
		t.Fatalf("err = %v; want ErrUnsupportedOperation", err)
	}
	var uerr *collections.UnsupportedOperationError
	if !errors.As(err, &uerr) {
		t.Fatalf("err = %T; want *UnsupportedOperationError", err)
	}
	if uerr.Method != "Add" || uerr.Key != collections.StringKey("x") || uerr.Type != "int" {
		t.Fatalf("unexpected error details: %+v", uerr)
	}

	nils := collections.New[any](nil)
	if _, err := nils.Invoke("Add", nil); !errors.Is(err, collections.ErrUnsupportedOperation) {
		t.Fatalf("nil element: err = %v", err)
	}
}

func TestDispatchContinueOnError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := collections.From([]any{&counter{n: 1}, "nope", &counter{n: -1}, &counter{n: 3}}, collections.WithLogger(logger))
	got, err := c.Invoke("Check", nil, collections.ContinueOnError())
	if err == nil {
		t.Fatal("expected combined error")
	}
	if n := len(multierr.Errors(err)); n != 2 {
		t.Fatalf("combined errors = %d; want 2 (%v)", n, err)
	}
	if !errors.Is(err, collections.ErrUnsupportedOperation) {
		t.Fatalf("err = %v; want it to include ErrUnsupportedOperation", err)
	}
	if diff := cmp.Diff([]any{true, nil, nil, true}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "dispatch failed") {
		t.Fatalf("expected debug log, got %q", buf.String())
	}
}

func TestNestedCollectionDispatch(t *testing.T) {
	inner1 := collections.From([]*dispatchTest{newDispatchTest(), newDispatchTest()})
	inner2 := collections.From([]*dispatchTest{newDispatchTest()})
	outer := collections.New(inner1, inner2)

	got, err := outer.Invoke("Mark", nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{[]any{true, true}, []any{true}}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	got, err = outer.Invoke("Mark", nil, collections.Merge())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(repeat(true, 3), got); diff != "" {
		t.Fatalf("merged (-want +got):\n%s", diff)
	}

	_, err = outer.Invoke("Missing", nil)
	var uerr *collections.UnsupportedOperationError
	if !errors.As(err, &uerr) || uerr.Type != "*collections_test.dispatchTest" {
		t.Fatalf("nested unsupported error = %v", err)
	}
}

func TestMergeLeavesScalars(t *testing.T) {
	c := collections.New[any](&counter{n: 1}, collections.New(&counter{n: 2}, &counter{n: 3}))
	got, err := c.Invoke("Add", []any{1}, collections.Merge())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{2, 3, 4}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestApply(t *testing.T) {
	c := counters(1, 2, 3)
	got, err := collections.Apply(c, func(x *counter) (int, error) { return x.n * 2, nil })
	if err != nil {
		t.Fatal(err)
	}
	assertSlice(t, got, []int{2, 4, 6})

	stop := errors.New("stop")
	got, err = collections.Apply(c, func(x *counter) (int, error) {
		if x.n == 2 {
			return 0, stop
		}
		return x.n, nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("err = %v; want stop", err)
	}
	assertSlice(t, got, []int{1})

	collected, err := collections.ApplyCollect(c, (*counter).Check)
	if err != nil {
		t.Fatal(err)
	}
	assertSlice(t, collected.Values(), []bool{true, true, true})
	assertSlice(t, collected.Keys(), c.Keys())
}
