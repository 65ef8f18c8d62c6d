package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseBuild  Phase = "build"  // descriptor construction
	PhaseEncode Phase = "encode" // value to bytes
	PhaseDecode Phase = "decode" // bytes to value
)

// Kind categorizes the error. The set is closed: every failure produced by
// the codec classifies under exactly one of these.
type Kind string

const (
	KindUnimplemented        Kind = "unimplemented"
	KindOverflowLimit        Kind = "overflow_limit"
	KindInvalidLength        Kind = "invalid_length"
	KindInvalidVariant       Kind = "invalid_variant"
	KindInvalidOptionVariant Kind = "invalid_option_variant"
	KindInvalidType          Kind = "invalid_type"
	KindBigintOutOfRange     Kind = "bigint_out_of_range"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	WireType string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.WireType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.WireType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", wire type ")
			b.WriteString(e.WireType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("wire type ")
			b.WriteString(e.WireType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.WireType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the value path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// WireType sets the wire type name
func (b *Builder) WireType(t string) *Builder {
	b.err.WireType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
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

// TypeMismatch creates an invalid type error for a value/descriptor mismatch
func TypeMismatch(phase Phase, path []string, goType, wireType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidType,
		Path:     path,
		GoType:   goType,
		WireType: wireType,
	}
}

// Unimplemented creates an error for a reserved descriptor kind
func Unimplemented(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnimplemented,
		Detail: what,
	}
}

// OverflowLimit creates an error for an access past the buffer or limit
func OverflowLimit(phase Phase, path []string, offset, need int, bound uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflowLimit,
		Path:   path,
		Detail: fmt.Sprintf("%d bytes at offset %d exceed bound %d", need, offset, bound),
	}
}

// InvalidDiscriminant creates an invalid variant error for an enum
// discriminant that matches no declared variant
func InvalidDiscriminant(phase Phase, path []string, disc uint32, enumType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidVariant,
		Path:     path,
		WireType: enumType,
		Detail:   fmt.Sprintf("discriminant %d matches no declared variant", disc),
		Value:    disc,
	}
}

// InvalidOptionTag creates an error for an option tag byte outside {0, 1}
func InvalidOptionTag(phase Phase, path []string, tag byte) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidOptionVariant,
		Path:   path,
		Detail: fmt.Sprintf("option tag must be 0 or 1, got %d", tag),
		Value:  tag,
	}
}

// InvalidLength creates an error for a nonsensical length or count
func InvalidLength(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidLength,
		Path:   path,
		Detail: detail,
	}
}

// InvalidBool creates an invalid type error for a bool byte outside {0, 1}
func InvalidBool(phase Phase, path []string, b byte) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindInvalidType,
		Path:     path,
		WireType: "bool",
		Detail:   fmt.Sprintf("bool byte must be 0 or 1, got %d", b),
		Value:    b,
	}
}

// BigintOutOfRange creates an error for a 128-bit operand out of range or an
// unknown varint discriminator byte
func BigintOutOfRange(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBigintOutOfRange,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
