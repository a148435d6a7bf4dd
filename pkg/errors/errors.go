// Package errors provides structured error handling for clockface.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvalidArgument indicates a rejected setter or constructor value.
	KindInvalidArgument
	// KindRender indicates a rendering error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindPersist indicates a save or restore failure.
	KindPersist
	// KindConfig indicates a configuration error.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindPersist:
		return "persist"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ErrInvalidArgument is wrapped by every validation failure so callers can
// test with errors.Is regardless of which field was rejected.
var ErrInvalidArgument = stderrors.New("invalid argument")

// ClockError represents a structured error in clockface.
type ClockError struct {
	// Op is the operation that failed (e.g., "clock.Style.SetBorderWidth").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Field names the rejected style field, if applicable.
	Field string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ClockError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s [%s] field=%s: %v", e.Op, e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ClockError) Unwrap() error {
	return e.Err
}

// NonNegative builds the error returned when a setter rejects a negative value.
func NonNegative(op, field string, value any) *ClockError {
	return &ClockError{
		Op:    op,
		Kind:  KindInvalidArgument,
		Field: field,
		Err:   fmt.Errorf("%w: %s has to be non-negative, got %v", ErrInvalidArgument, field, value),
	}
}

// Positive builds the error returned when a setter rejects a non-positive value.
func Positive(op, field string, value any) *ClockError {
	return &ClockError{
		Op:    op,
		Kind:  KindInvalidArgument,
		Field: field,
		Err:   fmt.Errorf("%w: %s has to be positive, got %v", ErrInvalidArgument, field, value),
	}
}

// IsInvalidArgument reports whether err is a validation failure.
func IsInvalidArgument(err error) bool {
	return stderrors.Is(err, ErrInvalidArgument)
}

// Wrap returns a ClockError of the given kind around err, or nil if err is nil.
func Wrap(op string, kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &ClockError{Op: op, Kind: kind, Err: err}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "scheduler.tick").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors that have no synchronous caller to return
// to, such as repaint failures on the scheduler goroutine.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ClockError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
