// Package serrors defines semantic error kinds shared by the service layers
// and the HTTP error mapping.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a semantic error category. Only NewKind creates one.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a comparable kind sentinel named name.
func NewKind(name string) Kind { return kind{s: name} }

var (
	// ErrNotFound reports a stored upload that does not exist.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrUnauthorized reports a missing or invalid bearer token.
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	// ErrBadRequest reports invalid client input. Its message is shown to the caller.
	ErrBadRequest = NewKind("BAD_REQUEST")
	// ErrInternal reports a failure of this service.
	ErrInternal = NewKind("INTERNAL")
	// ErrUpstream reports a validator that could not be reached at all
	// (connection refused, DNS failure, timeout). A remote that answered with
	// an error status is not an ErrUpstream.
	ErrUpstream = NewKind("UPSTREAM")
)

// Error couples a Kind with an optional cause and message. errors.Is and
// errors.As match both the kind and anything in the cause chain.
//
// Error() renders "<msg>: <cause>", or whichever of the two is set, or the
// kind name when neither is.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With returns an error of kind k with a formatted message and no cause.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap returns an error of kind k wrapping err with a formatted message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	case e.kind != nil:
		return e.kind.Error()
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error { return e.err }

// Is matches target against the kind first, then the cause chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}

	return (e.kind != nil && errors.Is(e.kind, target)) ||
		(e.err != nil && errors.Is(e.err, target))
}

// As extracts the kind or a type from the cause chain.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}

	return (e.kind != nil && errors.As(e.kind, target)) ||
		(e.err != nil && errors.As(e.err, target))
}

// Message returns the message given to With or Wrap, without the cause.
func (e *Error) Message() string { return e.msg }
