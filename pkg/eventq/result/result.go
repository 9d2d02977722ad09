// Package result provides a success-or-failure outcome wrapper used by
// producers and consumers to report expected failures without panics or
// sentinel error returns.
//
// A Result is either Success (carrying a value) or Failure (carrying an
// Error). Reading Value on a failed Result, or Err on a successful one, is a
// programmer error and panics. Expected failure paths travel as Failure
// values; panics are reserved for misuse.
package result

import "fmt"

// Error is an immutable failure record. Two Errors with equal fields are
// interchangeable; there is no identity beyond the field values.
type Error struct {
	// Code is a machine-readable failure code (may be empty).
	Code string

	// Message is a human-readable description.
	Message string

	// Details carries optional context beyond the message (may be empty).
	Details string
}

// NewError creates an Error with the given code, message, and details.
func NewError(code, message, details string) Error {
	return Error{Code: code, Message: message, Details: details}
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

// Result is a discriminated success/failure outcome. The zero value is a
// Failure with an empty Error; use the constructors.
type Result[T any] struct {
	value   T
	err     Error
	success bool
}

// Success creates a successful Result carrying value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value, success: true}
}

// Failure creates a failed Result carrying err.
func Failure[T any](err Error) Result[T] {
	return Result[T]{err: err}
}

// Failuref creates a failed Result whose Error has only a message, built
// printf-style. Code and Details are left empty.
func Failuref[T any](format string, args ...any) Result[T] {
	return Result[T]{err: Error{Message: fmt.Sprintf(format, args...)}}
}

// From bridges a conventional (value, error) return into a Result.
// A nil error yields Success(value); a non-nil error yields a Failure whose
// Error preserves err's fields when err is already a result.Error, and
// otherwise carries err.Error() as the message.
func From[T any](value T, err error) Result[T] {
	if err == nil {
		return Success(value)
	}
	if re, ok := err.(Error); ok {
		return Failure[T](re)
	}
	return Result[T]{err: Error{Message: err.Error()}}
}

// IsSuccess reports whether the Result carries a value.
func (r Result[T]) IsSuccess() bool {
	return r.success
}

// IsFailure reports whether the Result carries an Error.
func (r Result[T]) IsFailure() bool {
	return !r.success
}

// Value returns the carried value. It panics if the Result is a Failure:
// that is a logic bug in the caller, not a runtime condition.
func (r Result[T]) Value() T {
	if !r.success {
		panic(fmt.Sprintf("result: Value called on failure: %s", r.err.Error()))
	}
	return r.value
}

// Err returns the carried Error. It panics if the Result is a Success.
func (r Result[T]) Err() Error {
	if r.success {
		panic("result: Err called on success")
	}
	return r.err
}

// Get returns the value and whether the Result is a Success. It never
// panics; use it when the caller handles both arms locally.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.success
}

// String implements fmt.Stringer for log output.
func (r Result[T]) String() string {
	if r.success {
		return fmt.Sprintf("Success(%v)", r.value)
	}
	return fmt.Sprintf("Failure(%s)", r.err.Error())
}
