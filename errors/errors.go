// Package errors provides errors that remember where they were created.
//
// The frames are rendered by throwable-aware logging calls, one per line.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// maxFrames bounds the captured stack depth.
const maxFrames = 32

// StackError is an error carrying the call stack of its creation.
type StackError struct {
	msg   string
	cause error
	stack []string
}

// Error implements the error interface
func (e *StackError) Error() string {
	switch {
	case e.msg != "" && e.cause != nil:
		return e.msg + ": " + e.cause.Error()
	case e.msg != "":
		return e.msg
	case e.cause != nil:
		return e.cause.Error()
	default:
		return "unknown error"
	}
}

// Unwrap returns the inner error
func (e *StackError) Unwrap() error {
	return e.cause
}

// StackTrace returns the captured frames, innermost first.
func (e *StackError) StackTrace() []string {
	return e.stack
}

// New returns an error with the given message and the caller's stack.
func New(msg string) error {
	return &StackError{msg: msg, stack: captureStack(3)}
}

// Errorf formats like fmt.Errorf, %w included, and captures the stack.
func Errorf(format string, args ...any) error {
	return &StackError{cause: fmt.Errorf(format, args...), stack: captureStack(3)}
}

// WithStack attaches the caller's stack to err. It returns nil for nil.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	return &StackError{cause: err, stack: captureStack(3)}
}

// Wrap prefixes err with msg and attaches the caller's stack.
// It returns nil for nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &StackError{msg: msg, cause: err, stack: captureStack(3)}
}

// StackTrace returns the frames of the first error in err's chain that
// carries a stack, or nil.
func StackTrace(err error) []string {
	var st interface{ StackTrace() []string }
	if errors.As(err, &st) {
		return st.StackTrace()
	}
	return nil
}

// Causes returns the messages of the errors below err in its unwrap chain.
// Links whose message equals their parent's are skipped, so WithStack
// wrappers do not repeat the same line.
func Causes(err error) []string {
	var causes []string
	prev := ""
	if err != nil {
		prev = err.Error()
	}
	for cur := errors.Unwrap(err); cur != nil; cur = errors.Unwrap(cur) {
		msg := cur.Error()
		if msg != prev {
			causes = append(causes, msg)
		}
		prev = msg
	}
	return causes
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return errors.As(err, target) }

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error { return errors.Unwrap(err) }

func captureStack(skip int) []string {
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var stack []string
	for {
		frame, more := frames.Next()
		funcName := frame.Function
		// Shorten function name
		if idx := strings.LastIndex(funcName, "/"); idx >= 0 {
			funcName = funcName[idx+1:]
		}
		if funcName != "" {
			stack = append(stack, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, funcName))
		}
		if !more {
			break
		}
	}
	return stack
}
