package refson

import (
	"errors"
	"fmt"

	"github.com/refson/go-refson/resolve"
)

var (
	// ErrUnserializable is reported when the graph contains a callable
	// or another value with no representation.
	ErrUnserializable = errors.New("unserializable value")
	// ErrConstructorMismatch is reported when the resolver's type for a
	// name disagrees with the actual type of the node being encoded.
	ErrConstructorMismatch = errors.New("constructor mismatch")
	// ErrUnknownEncoding is reported when the decoder meets a record
	// shaped unlike any known one.
	ErrUnknownEncoding = errors.New("unknown encoding")
	// ErrBadReference is reported for a reference identifier with no
	// table entry.
	ErrBadReference = errors.New("bad reference")

	// Resolver errors, re-exported for convenience.
	ErrUnresolvableType = resolve.ErrUnresolvable
	ErrUnknownType      = resolve.ErrUnknownType
)

// EncodeError represents an error during encoding.
type EncodeError struct {
	Path    string // field path (e.g., "person.address.street")
	Message string
	Err     error
}

func (e *EncodeError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("encode error at %s: %s", e.Path, msg)
	}
	return fmt.Sprintf("encode error: %s", msg)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// DecodeError represents an error during decoding.
type DecodeError struct {
	Path    string
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("decode error at %s: %s", e.Path, msg)
	}
	return fmt.Sprintf("decode error: %s", msg)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
