// Package errors extends the standard library errors with annotated errors that carry [slog.Attr] and a stack
// trace for structured logging.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
)

const maxStackDepth = 16

// Re-exported from the standard library so that callers only need to import this package.
var (
	New    = errors.New
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

type sentinelError struct {
	msg string
}

func (e *sentinelError) Error() string {
	return e.msg
}

// NewSentinel creates an error meant to be declared on package level and compared with [Is].
func NewSentinel(msg string) error {
	return &sentinelError{msg: msg}
}

type annotatedError struct {
	msg   string
	err   error
	attrs []slog.Attr
	pcs   []uintptr
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

func callers(skip int) []uintptr {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pcs)
	return pcs[:n]
}

// Wrap annotates err with msg and attrs. The attrs are logged with [SlogError].
//
// Wrap returns nil if err is nil.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	return &annotatedError{
		msg:   msg,
		err:   err,
		attrs: attrs,
		// Skip runtime.Callers, callers and Wrap.
		pcs: callers(3), //nolint:mnd // see above
	}
}

// DecoratePanic converts a recovered panic value into an error with the stack trace of the panic.
//
// Call it inside the deferred function that recovers. Returns nil if excp is nil.
func DecoratePanic(excp any) error {
	if excp == nil {
		return nil
	}
	var inner error
	if err, ok := excp.(error); ok {
		inner = err
	}
	msg := fmt.Sprintf("panic: %v", excp)
	if inner != nil {
		msg = "panic"
	}
	return &annotatedError{
		msg:   msg,
		err:   inner,
		attrs: nil,
		pcs:   callers(3), //nolint:mnd // runtime.Callers, callers and DecoratePanic.
	}
}

// SlogError returns an [slog.Attr] group with the error message, the annotations of every wrapped layer and the
// stack trace captured closest to the root cause.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	var (
		annotations []any
		pcs         []uintptr
	)
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		var ae *annotatedError
		if !errors.As(cur, &ae) {
			break
		}
		for _, a := range ae.attrs {
			annotations = append(annotations, a)
		}
		pcs = ae.pcs
		cur = ae
	}
	attrs := []any{slog.String("message", err.Error())}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}
	if len(pcs) > 0 {
		attrs = append(attrs, slog.String("stack", formatStack(pcs)))
	}
	return slog.Group("error", attrs...)
}

func formatStack(pcs []uintptr) string {
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs)
	for {
		frame, more := frames.Next()
		if !strings.HasSuffix(frame.File, "annotatederror.go") && frame.File != "" {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(frame.Function)
			sb.WriteString(" ")
			sb.WriteString(frame.File)
			sb.WriteString(":")
			sb.WriteString(strconv.Itoa(frame.Line))
		}
		if !more {
			break
		}
	}
	return sb.String()
}
