// Package rerrors defines the two error tiers the value runtime raises:
// language-visible runtime errors, and programming errors that indicate
// a forbidden value reached somewhere it must never appear.
package rerrors

import "fmt"

// ReedError is the interface implemented by all runtime-visible errors.
// The value runtime has no notion of a source span, so there is
// nothing to carry here beyond kind and message.
type ReedError interface {
	error
	Kind() string
	Message() string
	Unwrap() error
}

// Runtime error kinds the value runtime can raise.
const (
	KindInvalidIndexType    = "invalid index type"
	KindIndexOutOfBounds    = "index out of bounds"
	KindNoSuchProperty      = "no such property"
	KindInvalidSubscript    = "invalid subscript type"
	KindInvalidCast         = "invalid cast"
	KindCannotCastToBool    = "cannot cast string to bool"
	KindExpectedType        = "expected type"
	KindIntOverflow         = "cannot fit int in desired type"
	KindNoSuchEnumerator    = "no value by such name"
	KindInvalidUTF8         = "invalid utf-8 sequence"
	KindInvalidIterationSrc = "invalid type for iteration"
	KindUnimplemented       = "TODO"
	KindNoSuchKey           = "no such key"
)

// RuntimeError represents a language-visible error raised by reportErr.
// It unwinds the current VM call frame (a dispatcher concern, out of
// scope here) and may be caught by a catch construct.
type RuntimeError struct {
	KindTag string
	Msg     string
	Cause   error
}

func New(kind, msg string) *RuntimeError {
	return &RuntimeError{KindTag: kind, Msg: msg}
}

func Newf(kind, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{KindTag: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error (%s): %s", e.KindTag, e.Msg)
}

func (e *RuntimeError) Kind() string    { return e.KindTag }
func (e *RuntimeError) Message() string { return e.Msg }
func (e *RuntimeError) Unwrap() error   { return e.Cause }

func (e *RuntimeError) CausedBy(cause error) *RuntimeError {
	e.Cause = cause
	return e
}

// ProgrammingError represents reachability of a forbidden value — e.g. an
// iterator reaching hash, dump, or eql. These are abrupt terminations:
// the runtime panics with one instead of returning it, so a host embedder
// must explicitly recover() if it wants to survive one.
type ProgrammingError struct {
	Msg string
}

func (e *ProgrammingError) Error() string { return "programming error: " + e.Msg }

// Panic raises a ProgrammingError panic with the given message.
func Panic(msg string) {
	panic(&ProgrammingError{Msg: msg})
}

func Panicf(format string, args ...interface{}) {
	panic(&ProgrammingError{Msg: fmt.Sprintf(format, args...)})
}
