package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Predefined errors (sentinel values).
//
// Errors derived from a sentinel with [Error.Wrap] or [Error.With] still
// satisfy errors.Is against that sentinel.
var (
	ErrIO                 = NewError("failed to read config")
	ErrParse              = NewError("parse error")
	ErrMissingKey         = NewError("missing key")
	ErrTypeMismatch       = NewError("type mismatch")
	ErrOutOfRange         = NewError("value out of range")
	ErrUninitialized      = NewError("config not initialized")
	ErrAlreadyInitialized = NewError("config already initialized")
	ErrUndefinedMacro     = NewError("undefined macro")
	ErrDuplicateKey       = NewError("duplicate key")
	ErrIncludeCycle       = NewError("include cycle")
	ErrMaxDepthExceeded   = NewError("maximum depth exceeded")
	ErrScope              = NewError("invalid macro scope")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
	base  *Error      // Sentinel this error was derived from
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.base = e

	return e
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	ee = &Error{err: err}
	ee.base = ee

	return ee
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && e.base != nil && t == e.base
}

// Attrs returns the structured attributes attached to e.
func (e *Error) Attrs() []slog.Attr { return e.attrs }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
		base:  e.base,
	}
}

// Wrapf creates a new Error wrapping a formatted message.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
		base:  e.base,
	}
}

// Number of bytes of source shown on each side of a parse failure.
const (
	excerptBefore = 12
	excerptAfter  = 12
)

// ParseError reports a malformed construct. Every ParseError satisfies
// errors.Is(err, ErrParse); the more specific cause, if any, is available
// through errors.Unwrap.
type ParseError struct {
	Err     error  // Specific cause, may be nil
	File    string // Source file, empty for in-memory input
	Key     string // Key or construct being parsed
	Excerpt string // Source text surrounding the failure
	Offset  int
	Line    int
	Column  int
}

// newParseError locates offset within src and captures the excerpt.
func newParseError(file, src string, offset int, key string, err error) *ParseError {
	offset = max(0, min(offset, len(src)))
	line := 1 + strings.Count(src[:offset], "\n")
	column := offset - strings.LastIndexByte(src[:offset], '\n')

	return &ParseError{
		Err:     err,
		File:    file,
		Key:     key,
		Excerpt: excerpt(src, offset, excerptBefore, excerptAfter),
		Offset:  offset,
		Line:    line,
		Column:  column,
	}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var sb strings.Builder

	sb.WriteString(ErrParse.msg)
	sb.WriteString(" at ")

	if e.File != "" {
		sb.WriteString(e.File)
		sb.WriteByte(':')
	}

	sb.WriteString(strconv.Itoa(e.Line))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(e.Column))

	if e.Key != "" {
		sb.WriteString(" [")
		sb.WriteString(e.Key)
		sb.WriteByte(']')
	}

	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	sb.WriteString("\n  --> ")
	sb.WriteString(strconv.Quote(e.Excerpt))

	return sb.String()
}

// Unwrap returns the specific cause.
func (e *ParseError) Unwrap() error { return e.Err }

// Is reports whether target is [ErrParse].
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", ErrParse.msg),
		slog.String("file", e.File),
		slog.Int("line", e.Line),
		slog.Int("column", e.Column),
		slog.String("key", e.Key),
		slog.String("excerpt", e.Excerpt),
	}

	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}

	return slog.GroupValue(attrs...)
}

// excerpt returns up to before bytes preceding and after bytes following
// offset, widened to rune boundaries.
func excerpt(src string, offset, before, after int) string {
	lo := max(0, offset-before)
	hi := min(len(src), offset+after)

	for lo > 0 && !utf8.RuneStart(src[lo]) {
		lo--
	}

	for hi < len(src) && !utf8.RuneStart(src[hi]) {
		hi++
	}

	return src[lo:hi]
}
