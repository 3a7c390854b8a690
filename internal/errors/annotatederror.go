// Package errors wraps the standard library errors with slog-friendly annotations.
//
// Errors created with NewSentinel or Wrap remember their call site and any
// [slog.Attr] given to them. SlogError collects the annotations from the whole
// chain into a single attribute suitable for structured logging.
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// annotatedError is an error with a message, optional wrapped cause,
// slog annotations, and the source location where it was created.
type annotatedError struct {
	msg    string
	cause  error
	attrs  []slog.Attr
	source string
}

func (e *annotatedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.cause
}

// NewSentinel creates a new sentinel error suitable for errors.Is comparisons.
func NewSentinel(msg string) error {
	return &annotatedError{
		msg:    msg,
		cause:  nil,
		attrs:  nil,
		source: callSite(2), //nolint:mnd // skip callSite and NewSentinel.
	}
}

// Wrap annotates err with a message and optional [slog.Attr] for logging.
//
// A nil err is allowed so that callers don't have to guard against it; the
// resulting error then carries only the message.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:    msg,
		cause:  err,
		attrs:  attrs,
		source: callSite(2), //nolint:mnd // skip callSite and Wrap.
	}
}

// DecoratePanic converts a recovered panic value into an error annotated with
// the panicking call site. It returns nil when recovered is nil.
func DecoratePanic(recovered any) error {
	if recovered == nil {
		return nil
	}
	return &annotatedError{
		msg:    fmt.Sprintf("panic: %v", recovered),
		cause:  nil,
		attrs:  nil,
		source: panicSite(),
	}
}

// SlogError collects the message, source, and annotations of the error chain
// into a single [slog.Attr] under the "error" group.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error", slog.String("message", "<nil>"))
	}

	var (
		annotations []any
		source      string
	)
	walkChain(err, func(ae *annotatedError) {
		for _, attr := range ae.attrs {
			annotations = append(annotations, attr)
		}
		// The outermost annotated error wins the source attribution.
		if source == "" {
			source = ae.source
		}
	})

	args := []any{slog.String("message", err.Error())}
	if source != "" {
		args = append(args, slog.String("source", source))
	}
	if len(annotations) > 0 {
		args = append(args, slog.Group("annotations", annotations...))
	}
	return slog.Group("error", args...)
}

// walkChain visits every annotatedError in the chain including errors.Join trees.
func walkChain(err error, visit func(*annotatedError)) {
	if err == nil {
		return
	}
	if ae, ok := err.(*annotatedError); ok { //nolint:errorlint // chain walk handles unwrapping.
		visit(ae)
	}
	switch unwrapped := err.(type) { //nolint:errorlint // deliberate chain walk.
	case interface{ Unwrap() error }:
		walkChain(unwrapped.Unwrap(), visit)
	case interface{ Unwrap() []error }:
		for _, joined := range unwrapped.Unwrap() {
			walkChain(joined, visit)
		}
	}
}

// callSite returns "file.go:123" for the caller skip frames up the stack.
func callSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", trimPath(file), line)
}

// panicSite walks past the runtime panic machinery to find the frame that panicked.
func panicSite() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(2, pcs[:]) //nolint:mnd // skip Callers and panicSite.
	frames := runtime.CallersFrames(pcs[:n])

	sawPanic := false
	fallback := ""
	for {
		frame, more := frames.Next()
		inRuntime := strings.HasPrefix(frame.Function, "runtime.")
		if sawPanic && !inRuntime {
			return fmt.Sprintf("%s:%d", trimPath(frame.File), frame.Line)
		}
		if inRuntime {
			sawPanic = true
		} else if fallback == "" && !strings.Contains(frame.File, "annotatederror.go") {
			fallback = fmt.Sprintf("%s:%d", trimPath(frame.File), frame.Line)
		}
		if !more {
			return fallback
		}
	}
}

// trimPath keeps the last two path segments to keep log lines short.
func trimPath(file string) string {
	segments := strings.Split(file, "/")
	if len(segments) <= 2 { //nolint:mnd // already short.
		return file
	}
	return strings.Join(segments[len(segments)-2:], "/")
}

// New returns an error that formats as the given text. See [stderrors.New].
func New(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's chain matches target. See [stderrors.Is].
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target. See [stderrors.As].
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err. See [stderrors.Unwrap].
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join wraps the given errors into a single error. See [stderrors.Join].
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}
