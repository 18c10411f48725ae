package collections

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Dispatcher is implemented by values that resolve method calls by name
// themselves instead of through reflection.
//
// Collection implements Dispatcher, so dispatching to a collection of
// collections recurses into every nested collection.
type Dispatcher interface {
	Dispatch(method string, args ...any) (any, error)
}

// InvokeOption configures [Collection.Invoke] and [Collection.InvokeCollect].
type InvokeOption func(*invokeOptions)

type invokeOptions struct {
	merge           bool
	continueOnError bool
}

// Merge flattens per-item results that are slices or collections into one
// sequence instead of a sequence of sequences. Scalar results are kept as
// they are.
func Merge() InvokeOption {
	return func(o *invokeOptions) { o.merge = true }
}

// ContinueOnError keeps dispatching after an item fails. Failed items
// contribute nil to the result and every failure is reported in the returned
// error (see [multierr.Errors]).
//
// Without it dispatch stops at the first failing item.
func ContinueOnError() InvokeOption {
	return func(o *invokeOptions) { o.continueOnError = true }
}

// Invoke calls method with args on every item, in key order, and returns the
// results in the same order: result i belongs to Keys()[i] (unless Merge is
// used).
//
// An item implementing [Dispatcher] handles the call itself. Otherwise the
// exported method of that name is called through reflection; it may return
// nothing, a value, an error, or a value and an error. An item without the
// method fails with an [*UnsupportedOperationError].
//
// Dispatch stops at the first error unless [ContinueOnError] is given. Items
// already called keep whatever side effects the call had.
func (c *Collection[T]) Invoke(method string, args []any, opts ...InvokeOption) ([]any, error) {
	o := invokeOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	pairs, err := c.invoke(method, args, o)
	out := make([]any, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.Second)
	}
	return out, err
}

// InvokeCollect is [Collection.Invoke] with the results wrapped in a new
// collection. Without [Merge] each result is stored under the key of the item
// that produced it; with Merge the results are keyed 0 … n-1.
//
// On failure the collection holds the results gathered so far.
func (c *Collection[T]) InvokeCollect(method string, args []any, opts ...InvokeOption) (*Collection[any], error) {
	o := invokeOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	pairs, err := c.invoke(method, args, o)
	out := derive[any](c)
	for _, p := range pairs {
		if o.merge {
			out.Append(p.Second)
		} else {
			out.put(p.First, p.Second)
		}
	}
	return out, err
}

// Dispatch is the implicit call form: c.Dispatch("Mark") is
// c.Invoke("Mark", nil). The result is the []any returned by Invoke.
func (c *Collection[T]) Dispatch(method string, args ...any) (any, error) {
	return c.Invoke(method, args)
}

func (c *Collection[T]) invoke(method string, args []any, o invokeOptions) ([]Pair[Key, any], error) {
	out := make([]Pair[Key, any], 0, c.Count())
	var errs error
	for k, item := range c.All() {
		res, err := callMethod(any(item), method, args)
		if err != nil {
			if uerr := (*UnsupportedOperationError)(nil); errors.As(err, &uerr) && uerr.Type == "" {
				uerr.Key = k
				uerr.Type = fmt.Sprintf("%T", item)
			}
			if !o.continueOnError {
				return out, err
			}
			c.logger.Debug("collections: dispatch failed, continuing",
				"method", method, "key", k.String(), "error", err)
			errs = multierr.Append(errs, err)
			res = nil
		}
		if o.merge {
			if flat, ok := flatten(res); ok {
				for _, v := range flat {
					out = append(out, Pair[Key, any]{First: k, Second: v})
				}
				continue
			}
		}
		out = append(out, Pair[Key, any]{First: k, Second: res})
	}
	return out, errs
}

var errorType = reflect.TypeFor[error]()

// callMethod resolves method on item and calls it with args.
func callMethod(item any, method string, args []any) (any, error) {
	if d, ok := item.(Dispatcher); ok {
		return d.Dispatch(method, args...)
	}
	v := reflect.ValueOf(item)
	if !v.IsValid() {
		return nil, &UnsupportedOperationError{Method: method}
	}
	m := v.MethodByName(method)
	if !m.IsValid() {
		return nil, &UnsupportedOperationError{Method: method}
	}
	in, err := convertArgs(m.Type(), method, args)
	if err != nil {
		return nil, err
	}
	return unpackResults(m.Call(in))
}

func convertArgs(mt reflect.Type, method string, args []any) ([]reflect.Value, error) {
	n := mt.NumIn()
	if mt.IsVariadic() {
		if len(args) < n-1 {
			return nil, errors.Wrapf(ErrInvalidArgument, "%s: want at least %d arguments, got %d", method, n-1, len(args))
		}
	} else if len(args) != n {
		return nil, errors.Wrapf(ErrInvalidArgument, "%s: want %d arguments, got %d", method, n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var pt reflect.Type
		if mt.IsVariadic() && i >= n-1 {
			pt = mt.In(n - 1).Elem()
		} else {
			pt = mt.In(i)
		}
		av, err := convertArg(arg, pt)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: argument %d", method, i)
		}
		in[i] = av
	}
	return in, nil
}

func convertArg(arg any, pt reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch pt.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(pt), nil
		}
		return reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "nil is not a valid %s", pt)
	}
	av := reflect.ValueOf(arg)
	if av.Type().AssignableTo(pt) {
		return av, nil
	}
	// int -> string is a legal conversion that yields a rune; refuse it.
	if av.Type().ConvertibleTo(pt) && (av.Kind() == reflect.String) == (pt.Kind() == reflect.String) {
		if isNumeric(av.Kind()) && isNumeric(pt.Kind()) && !fitsNumeric(av, pt) {
			return reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "%v does not fit in %s", arg, pt)
		}
		return av.Convert(pt), nil
	}
	return reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "%T is not assignable to %s", arg, pt)
}

func isNumeric(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// fitsNumeric reports whether av converts to pt without losing its value.
// Float to float conversions only need to stay in range.
func fitsNumeric(av reflect.Value, pt reflect.Type) bool {
	if isFloat(av.Kind()) && isFloat(pt.Kind()) {
		return !reflect.Zero(pt).OverflowFloat(av.Float())
	}
	cv := av.Convert(pt)
	return cv.Convert(av.Type()).Equal(av) && negative(cv) == negative(av)
}

func negative(v reflect.Value) bool {
	switch {
	case v.CanInt():
		return v.Int() < 0
	case v.CanFloat():
		return v.Float() < 0
	}
	return false
}

func unpackResults(out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if out[0].Type() == errorType {
			return nil, asError(out[0])
		}
		return out[0].Interface(), nil
	}
	last := out[len(out)-1]
	if last.Type() == errorType {
		if err := asError(last); err != nil {
			return nil, err
		}
		if len(out) == 2 {
			return out[0].Interface(), nil
		}
		out = out[:len(out)-1]
	}
	res := make([]any, len(out))
	for i, v := range out {
		res[i] = v.Interface()
	}
	return res, nil
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}

// anyValues is implemented by every Collection instantiation.
type anyValues interface {
	valuesAny() []any
}

func (c *Collection[T]) valuesAny() []any {
	out := make([]any, 0, c.Count())
	for _, v := range c.Values() {
		out = append(out, v)
	}
	return out
}

// flatten returns the elements of slice-like results.
func flatten(res any) ([]any, bool) {
	switch r := res.(type) {
	case nil:
		return nil, false
	case []any:
		return r, true
	case []byte:
		return nil, false
	case anyValues:
		return r.valuesAny(), true
	}
	v := reflect.ValueOf(res)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, v.Len())
	for i := range out {
		out[i] = v.Index(i).Interface()
	}
	return out, true
}

// ─────────────────────────────────────────────────────────────────────────────
// Typed dispatch
// ─────────────────────────────────────────────────────────────────────────────

// Apply calls fn on every item in key order and returns the results.
// It is the compile-time checked form of [Collection.Invoke]: the capability
// is expressed by fn's signature instead of a method name.
// It stops at the first error.
//
//	names, err := collections.Apply(users, (*User).DisplayName)
func Apply[T, R any](c *Collection[T], fn func(T) (R, error)) ([]R, error) {
	out := make([]R, 0, c.Count())
	for _, item := range c.All() {
		r, err := fn(item)
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

// ApplyCollect is [Apply] with the results stored under the keys of the items
// that produced them.
func ApplyCollect[T, R any](c *Collection[T], fn func(T) (R, error)) (*Collection[R], error) {
	out := derive[R](c)
	for k, item := range c.All() {
		r, err := fn(item)
		if err != nil {
			return out, err
		}
		out.put(k, r)
	}
	return out, nil
}
