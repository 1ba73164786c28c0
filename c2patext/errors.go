package c2patext

import (
	"errors"

	"xdao.co/c2patext/status"
)

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind/Code rather than matching error strings.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	KindWrapper Kind = "Wrapper"
	KindExtract Kind = "Extract"
)

// Error is the package's structured error type.
//
// Code is the validation status code naming the violated wrapper rule.
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	Code    status.Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches another *Error with the same Kind and Code, so sentinel values
// such as ErrMultipleWrappers work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// ErrMultipleWrappers is returned when text carries more than one valid wrapper.
var ErrMultipleWrappers error = &Error{
	Kind:    KindExtract,
	Code:    status.MultipleWrappers,
	Message: "multiple C2PA wrappers detected",
}

func newError(kind Kind, code status.Code, msg string) error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// CodeOf returns the status code carried by a structured error, or "" if unknown.
func CodeOf(err error) status.Code {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}
