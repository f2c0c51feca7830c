package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the decode the error occurred
type Phase string

const (
	PhaseIO        Phase = "io"        // opening/reading the input
	PhaseHeader    Phase = "header"    // fixed file header
	PhaseColorMode Phase = "colormode" // color mode data section
	PhaseResources Phase = "resources" // image resources section
	PhaseLayers    Phase = "layers"    // layer record table
	PhaseChannels  Phase = "channels"  // channel data second pass
	PhaseImage     Phase = "image"     // merged composite image data
	PhaseBuild     Phase = "build"     // tree reconstruction/compositing
)

// Kind categorizes the error
type Kind string

const (
	KindBadMagic    Kind = "bad_magic"    // wrong file signature
	KindUnsupported Kind = "unsupported"  // valid format, outside the subset
	KindInvalidData Kind = "invalid_data" // structurally broken input
	KindTruncated   Kind = "truncated"    // read past end of input
	KindResource    Kind = "resource"     // I/O failure, not a format problem
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Offset int64 // byte offset in the input, -1 when unknown
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Fatal reports whether the error aborts the whole decode. Resource errors
// are fatal too, but callers may want to retry those at a coarser level.
func (e *Error) Fatal() bool {
	return e.Kind != KindResource
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Offset sets the byte offset in the input
func (b *Builder) Offset(off int64) *Builder {
	b.err.Offset = off
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// BadMagic creates a wrong-signature error
func BadMagic(phase Phase, got []byte, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBadMagic,
		Detail: fmt.Sprintf("signature %q, want %q", got, want),
		Offset: -1,
	}
}

// Unsupported creates an outside-the-subset error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
		Offset: -1,
	}
}

// InvalidData creates a structurally-broken-input error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
		Offset: -1,
	}
}

// Truncated creates an unexpected-end-of-input error
func Truncated(phase Phase, offset int64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncated,
		Detail: "unexpected end of input",
		Offset: offset,
	}
}

// Resource creates an I/O error distinct from format errors
func Resource(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseIO,
		Kind:   KindResource,
		Detail: detail,
		Cause:  cause,
		Offset: -1,
	}
}

// Wrap wraps an existing error with phase and kind context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
		Offset: -1,
	}
}
