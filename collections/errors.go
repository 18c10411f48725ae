package collections

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors returned by Collection operations.
//
// Use [errors.Is] for comparisons; the typed errors below unwrap to them.
var (
	// ErrKeyNotFound is returned by strict reads of an absent key.
	ErrKeyNotFound = errors.New("collections: key not found")

	// ErrInvalidKey is returned when a key is neither an integer nor a string.
	ErrInvalidKey = errors.New("collections: key must be an integer or a string")

	// ErrUnsupportedOperation is returned when a dispatched method is not
	// available on an element.
	ErrUnsupportedOperation = errors.New("collections: unsupported operation")

	// ErrInvalidArgument is returned when forwarded arguments do not fit the
	// signature of the dispatched method.
	ErrInvalidArgument = errors.New("collections: invalid argument")

	// ErrFormatNotFound is returned by [Parse] for an unregistered format.
	ErrFormatNotFound = errors.New("collections: format not found")

	// ErrEmptyFormatName is returned by [Formats.Register] for an empty name.
	ErrEmptyFormatName = errors.New("collections: format name must not be empty")

	// ErrReservedFormat is returned by [Formats.Register] for "array", which is
	// always handled by the collection itself.
	ErrReservedFormat = errors.New("collections: format name is reserved")

	// ErrNilFormat is returned by [Formats.Register] when the format is nil.
	ErrNilFormat = errors.New("collections: format must not be nil")

	// ErrNotAnArray is returned by [FromArray] when the value is not one of
	// the array shapes produced by [Collection.ToArray].
	ErrNotAnArray = errors.New("collections: value is not an array")
)

// KeyNotFoundError reports a strict read of a missing key.
type KeyNotFoundError struct {
	Key Key
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrKeyNotFound, e.Key.String())
}

func (e *KeyNotFoundError) Unwrap() error { return ErrKeyNotFound }

// InvalidKeyError reports a key value of an unsupported type.
type InvalidKeyError struct {
	Value any
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("%s: got %T", ErrInvalidKey, e.Value)
}

func (e *InvalidKeyError) Unwrap() error { return ErrInvalidKey }

// UnsupportedOperationError reports the element that could not handle a
// dispatched method.
type UnsupportedOperationError struct {
	// Method is the dispatched method name.
	Method string
	// Key is the key of the element in the dispatching collection.
	Key Key
	// Type is the dynamic type of the element, as printed by %T.
	Type string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s: %s has no method %q (key %q)", ErrUnsupportedOperation, e.Type, e.Method, e.Key.String())
}

func (e *UnsupportedOperationError) Unwrap() error { return ErrUnsupportedOperation }
