package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which part of the layer the error came from
type Phase string

const (
	PhaseArena     Phase = "arena"     // bump allocator
	PhasePlatform  Phase = "platform"  // platform API adapter
	PhaseNative    Phase = "native"    // native invocation bridge
	PhasePrimitive Phase = "primitive" // byte/string/sort/search primitives
	PhaseFormat    Phase = "format"    // bounded formatting
	PhaseEngine    Phase = "engine"    // wazero integration
	PhaseLoad      Phase = "load"      // module loading
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfMemory      Kind = "out_of_memory"
	KindOverflow         Kind = "overflow"
	KindUnsupportedArity Kind = "unsupported_arity"
	KindInvalidInput     Kind = "invalid_input"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindNotFound         Kind = "not_found"
	KindRegistration     Kind = "registration"
	KindInstantiation    Kind = "instantiation"
	KindInvalidData      Kind = "invalid_data"
)

// Error is the structured error type used throughout the layer
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
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

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
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

// OutOfMemory reports that an allocation cannot be satisfied within the
// arena's remaining capacity.
func OutOfMemory(phase Phase, size, remaining uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfMemory,
		Detail: fmt.Sprintf("cannot allocate %d bytes (%d remaining)", size, remaining),
		Value:  size,
	}
}

// Overflow reports an arithmetic overflow in a size computation.
func Overflow(phase Phase, a, b uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("%d*%d overflows uint32", a, b),
	}
}

// UnsupportedArity reports a native call whose argument count the bridge
// cannot dispatch.
func UnsupportedArity(arity int) *Error {
	return &Error{
		Phase:  PhaseNative,
		Kind:   KindUnsupportedArity,
		Detail: fmt.Sprintf("%d arguments (bridge supports 0..4)", arity),
		Value:  arity,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, offset, length, capacity uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("range [%d, %d) outside capacity %d", offset, offset+length, capacity),
		Value:  offset,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Registration reports a failure to register a native function.
func Registration(namespace, name string, cause error) *Error {
	return &Error{
		Phase:  PhaseNative,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %s#%s", namespace, name),
		Cause:  cause,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseEngine,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}
