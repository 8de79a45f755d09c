package bdd

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Binding, projection, and chain errors. Chain operations report them by
// panicking with a *ChainError that unwraps to one of these.
var (
	// ErrNameNotBound is returned by Given.Lookup for a name never bound.
	ErrNameNotBound = errors.New("name not bound")
	// ErrUnknownReference reports a when or then term naming no given binding.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrAttributeNotFound reports a when term the current object does not expose.
	ErrAttributeNotFound = errors.New("attribute not found")
	// ErrProjection reports a failed attribute or index projection.
	ErrProjection = errors.New("projection failed")
	// ErrUnknownProperty reports a then property that is neither an
	// attribute of the wrapped value nor a grammar word.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrNotCallable reports a call on a value that is not a function.
	ErrNotCallable = errors.New("not callable")
	// ErrTermAlreadyCalled reports a second call on the same when term.
	ErrTermAlreadyCalled = errors.New("term already called")
	// ErrNoCursor reports Then.The used before any And.
	ErrNoCursor = errors.New("no cursor before and")
	// ErrInvalidMatcher reports a Raises or NotRaises argument that is
	// neither an error nor an error type.
	ErrInvalidMatcher = errors.New("invalid error matcher")
	// ErrPending marks a scenario whose body is not written yet.
	ErrPending = errors.New("scenario pending")
	// ErrBadScenario reports a prefixed method with the wrong signature.
	ErrBadScenario = errors.New("bad scenario method")
)

// ChainError reports a failed when or then operation.
type ChainError struct {
	// Op is the operation that failed: "given", "when", "then", "call", ...
	Op string
	// Name is the term, property, or qualified name involved.
	Name string
	// Err wraps the sentinel and, when there is one, the host failure.
	Err error
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *ChainError) Unwrap() error { return e.Err }

func chainError(op, name string, sentinel, cause error) *ChainError {
	err := sentinel
	if cause != nil {
		err = fmt.Errorf("%w: %w", sentinel, cause)
	}
	return &ChainError{Op: op, Name: name, Err: err}
}

// AssertionError is a failed value or exception assertion. It is the
// expected "scenario failed" outcome.
type AssertionError struct {
	// Message is the spec text of the current and-segment.
	Message string
	// Detail is the comparison report, when the primitive produced one.
	Detail string
}

func (e *AssertionError) Error() string { return e.Message }

// PanicError wraps a value recovered from a panicking callable or scenario
// body.
type PanicError struct {
	Value any
	Stack []byte
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error, so errors.Is and
// errors.As see through the panic.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Pending aborts the running scenario as not yet written. The runner
// reports it as an error.
func Pending(reason string) {
	panic(fmt.Errorf("%w: %s", ErrPending, reason))
}
