package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSetup    Phase = "setup"    // bridge construction and installation
	PhaseDispatch Phase = "dispatch" // argument validation and submission
	PhaseMarshal  Phase = "marshal"  // script value conversion
	PhaseRegistry Phase = "registry" // callback group storage
	PhaseComplete Phase = "complete" // async completion handling
	PhaseService  Phase = "service"  // filesystem service operations
	PhaseEngine   Phase = "engine"   // engine lifecycle
)

// Kind categorizes the error
type Kind string

const (
	KindBadArity     Kind = "bad_arity"
	KindTypeMismatch Kind = "type_mismatch"
	KindNotFunction  Kind = "not_function"
	KindUnknownToken Kind = "unknown_token"
	KindClosed       Kind = "closed"
	KindNotFound     Kind = "not_found"
	KindIO           Kind = "io"
	KindInvalidInput Kind = "invalid_input"
	KindScriptThrow  Kind = "script_throw"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string // operation name (read, write, move, remove, stat, readFromFile)
	Path   string // filesystem path, when one applies
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
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

// Is reports whether err is an *Error from the given phase and kind,
// unwrapping as needed.
func Is(err error, phase Phase, kind Kind) bool {
	return errors.Is(err, &Error{Phase: phase, Kind: kind})
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

// Op sets the operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Path sets the filesystem path
func (b *Builder) Path(path string) *Builder {
	b.err.Path = path
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

// BadArity creates a wrong-argument-count error
func BadArity(op string, want, got int) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindBadArity,
		Op:     op,
		Detail: fmt.Sprintf("requires %d parameters, got %d", want, got),
	}
}

// NotFunction creates an error for a non-callable where a callback is required
func NotFunction(op string, argIndex int) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindNotFunction,
		Op:     op,
		Detail: fmt.Sprintf("argument %d must be a function", argIndex),
	}
}

// TypeMismatch creates a script value conversion error
func TypeMismatch(want string, got any) *Error {
	return &Error{
		Phase:  PhaseMarshal,
		Kind:   KindTypeMismatch,
		Detail: fmt.Sprintf("expected %s, got %T", want, got),
	}
}

// Closed creates an error for use of a closed engine or service
func Closed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: what + " is closed",
	}
}

// NotFound creates a missing-path error
func NotFound(op, path string) *Error {
	return &Error{
		Phase: PhaseService,
		Kind:  KindNotFound,
		Op:    op,
		Path:  path,
	}
}

// IO wraps a filesystem failure
func IO(op, path string, cause error) *Error {
	return &Error{
		Phase: PhaseService,
		Kind:  KindIO,
		Op:    op,
		Path:  path,
		Cause: cause,
	}
}

// InvalidInput creates a validation error with a detail message
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap creates an error wrapping a cause with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Cause:  cause,
		Detail: detail,
	}
}
