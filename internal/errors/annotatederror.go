// Package errors wraps the standard library errors package with annotated errors that carry
// structured [slog.Attr] and the call site where they were created.
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
)

// annotatedError adds a message, slog annotations and the source location to a wrapped error.
type annotatedError struct {
	err    error
	msg    string
	attrs  []slog.Attr
	source string
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	if e.msg == "" {
		return e.err.Error()
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// NewSentinel creates an error without a call site. Use it for package level sentinel errors.
func NewSentinel(text string) error {
	return stderrors.New(text)
}

// New creates an error annotated with the call site and the given attributes.
func New(text string, attrs ...slog.Attr) error {
	return &annotatedError{
		err:    nil,
		msg:    text,
		attrs:  attrs,
		source: callerSource(2), //nolint:mnd // skip callerSource and New
	}
}

// Wrap annotates err with a message, attributes and the call site. Wrap returns nil if err is nil.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	return &annotatedError{
		err:    err,
		msg:    msg,
		attrs:  attrs,
		source: callerSource(2), //nolint:mnd // skip callerSource and Wrap
	}
}

// DecoratePanic converts a value recovered from a panic into an error pointing to the panic site.
func DecoratePanic(recovered any) error {
	if recovered == nil {
		return nil
	}
	var msg string
	switch v := recovered.(type) {
	case error:
		msg = "panic: " + v.Error()
	default:
		msg = fmt.Sprintf("panic: %v", v)
	}
	return &annotatedError{
		err:    nil,
		msg:    msg,
		attrs:  nil,
		source: panicSource(),
	}
}

// SlogError converts err into a slog group containing the message, the annotations collected from the
// whole error chain and the source of the innermost annotated error.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	var (
		annotations []any
		source      string
	)
	collect(err, func(ae *annotatedError) {
		for _, a := range ae.attrs {
			annotations = append(annotations, a)
		}
		if ae.source != "" {
			source = ae.source
		}
	})

	attrs := []any{slog.String("message", err.Error())}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	return slog.Group("error", attrs...)
}

// collect walks the error tree depth first and calls fn for each annotated error.
func collect(err error, fn func(*annotatedError)) {
	if err == nil {
		return
	}
	if ae, ok := err.(*annotatedError); ok { //nolint:errorlint // walking the tree manually
		fn(ae)
	}
	switch u := err.(type) { //nolint:errorlint // walking the tree manually
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			collect(e, fn)
		}
	case interface{ Unwrap() error }:
		collect(u.Unwrap(), fn)
	}
}

func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return file + ":" + strconv.Itoa(line)
}

// panicSource finds the first frame after runtime.gopanic, which is the code that panicked.
func panicSource() string {
	pcs := make([]uintptr, 32) //nolint:mnd // deep enough for panics in handlers
	n := runtime.Callers(2, pcs) //nolint:mnd // skip runtime.Callers and panicSource
	frames := runtime.CallersFrames(pcs[:n])
	var (
		afterPanic bool
		fallback   string
	)
	for {
		frame, more := frames.Next()
		switch {
		case frame.Function == "runtime.gopanic":
			afterPanic = true
		case afterPanic && !strings.HasPrefix(frame.Function, "runtime."):
			return frame.File + ":" + strconv.Itoa(frame.Line)
		case fallback == "" && !strings.HasPrefix(frame.Function, "runtime.") &&
			!strings.Contains(frame.File, "internal/errors/"):
			fallback = frame.File + ":" + strconv.Itoa(frame.Line)
		}
		if !more {
			return fallback
		}
	}
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}
