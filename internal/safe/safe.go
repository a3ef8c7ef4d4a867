// Package safe wraps goroutine execution with panic recovery so that a
// segment search dispatched onto a pooled goroutine can never bring the
// whole process down. A recovered panic is surfaced to the caller as a
// regular error rather than crashing the worker.
package safe

import (
	"fmt"
	"runtime/debug"
	"time"
)

// PanicError represents a recovered panic, carrying enough context to
// diagnose it after the fact: when it happened, what was passed to
// panic(), and the stack at the time.
type PanicError struct {
	Time  time.Time
	Info  any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic recovered at %s: %v\n%s",
		e.Time.Format(time.RFC3339Nano), e.Info, e.Stack)
}

// NewPanicError builds a PanicError from the value recover() returned and
// the stack trace captured at that point.
func NewPanicError(info any, stack []byte) error {
	return &PanicError{
		Time:  time.Now(),
		Info:  info,
		Stack: stack,
	}
}

// Call runs fn and converts any panic into a *PanicError, returned as err.
// If fn returns normally, its error is passed through unchanged.
func Call(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewPanicError(r, debug.Stack())
		}
	}()
	return fn()
}
