// Package serrors implements semantic errors: errors that carry a category
// sentinel (Kind) alongside an optional message and wrapped cause. Callers
// classify failures with errors.Is against the kind sentinels and transports
// map kinds to status codes without inspecting error strings.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is the sentinel type produced by NewKind. The unexported method
// keeps arbitrary errors from posing as kinds.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind mints a category sentinel under the given name. Sentinels are
// comparable values; wrapping one in an Error makes errors.Is and errors.As
// see it anywhere in the chain.
func NewKind(name string) Kind { return kind{s: name} }

// Default kinds covering the common failure categories of the application.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrBadRequest indicates the client sent invalid data.
	ErrBadRequest = NewKind("BAD_REQUEST")
	// ErrUnprocessable indicates well-formed input that could not be processed.
	ErrUnprocessable = NewKind("UNPROCESSABLE")
	// ErrUnauthorized indicates missing or failed authentication.
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	// ErrInternal indicates a server-side failure.
	ErrInternal = NewKind("INTERNAL")
	// ErrTimeout indicates the operation ran out of time.
	ErrTimeout = NewKind("TIMEOUT")
)

// Domain kinds for the volume calculation pipeline.
var (
	// ErrNoDocument indicates no SVG document has been uploaded yet.
	ErrNoDocument = NewKind("NO_INPUT")
	// ErrExtraction indicates the uploaded document could not be parsed into shapes.
	ErrExtraction = NewKind("EXTRACTION_FAILED")
	// ErrInvalidDepth indicates the supplied depth text is malformed.
	ErrInvalidDepth = NewKind("INVALID_DEPTH")
)

// Error is a semantic error: a kind sentinel plus an optional message and
// an optional wrapped cause. errors.Is and errors.As match against both the
// kind and the cause chain.
//
// The Error() string is "<msg>: <cause>" when both are set, whichever one
// is present when only one is set, and the kind's name when neither is.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With builds an Error from a kind and a formatted message. Use Wrap when
// there is also a concrete cause to keep in the chain.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap builds an Error from a kind, a cause to wrap and a formatted
// message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly builds an Error carrying nothing but the kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

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
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap exposes the wrapped cause to the errors package.
func (e *Error) Unwrap() error { return e.err }

// Is reports a match when target equals the kind sentinel or anything in
// the wrapped cause chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As tries the kind sentinel first and then the wrapped cause chain.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// Kind returns the category sentinel, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the attached message, which may be empty.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause, which may be nil.
func (e *Error) Cause() error { return e.err }
