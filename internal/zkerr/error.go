// Package zkerr defines the error taxonomy shared by every compiler stage.
//
// Every stage returns a *zkerr.Error instead of a bare error so that callers
// (the CLI, host bindings, tests) can branch on Kind without string
// matching. Kinds that are "should be unreachable on valid input" bugs
// (InvalidStateID, InvalidTransition) still flow back as values; nothing in
// this package panics across a package boundary.
package zkerr

import "fmt"

// Kind classifies a compiler error. The zero value is ParseError, so never
// rely on the zero value of Kind to mean "no error" — check err == nil.
type Kind uint8

const (
	// ParseError indicates the regex pattern could not be parsed.
	ParseError Kind = iota
	// EmptyAutomaton indicates construction produced no states, no start
	// state, or no accept state.
	EmptyAutomaton
	// InvalidStateID indicates a state id fell outside the valid range.
	// Should be unreachable on valid input; treated as a bug if observed.
	InvalidStateID
	// InvalidTransition indicates an edge pointed at a nonexistent state.
	// Should be unreachable on valid input; treated as a bug if observed.
	InvalidTransition
	// Verification indicates a post-pipeline sanity check failed.
	Verification
	// InvalidInput indicates the caller's input/H/M arguments are
	// inconsistent (e.g. input longer than H).
	InvalidInput
	// NoMatch indicates the input does not match the automaton.
	NoMatch
	// NoValidPath indicates no accepting run exists for the input, found
	// after partial progress (distinguished from NoMatch by call site).
	NoValidPath
	// InvalidCapture indicates max_bytes is missing, zero, or too small
	// for an actual captured substring.
	InvalidCapture
	// TemplateError indicates a backend could not emit code (empty
	// template name, oversized lookup table, etc).
	TemplateError
	// Serialization indicates a value could not be marshaled to JSON.
	Serialization
	// Deserialization indicates JSON could not be unmarshaled into a value.
	Deserialization
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case EmptyAutomaton:
		return "EmptyAutomaton"
	case InvalidStateID:
		return "InvalidStateID"
	case InvalidTransition:
		return "InvalidTransition"
	case Verification:
		return "Verification"
	case InvalidInput:
		return "InvalidInput"
	case NoMatch:
		return "NoMatch"
	case NoValidPath:
		return "NoValidPath"
	case InvalidCapture:
		return "InvalidCapture"
	case TemplateError:
		return "TemplateError"
	case Serialization:
		return "Serialization"
	case Deserialization:
		return "Deserialization"
	default:
		return fmt.Sprintf("UnknownKind(%d)", uint8(k))
	}
}

// Error is the single error type returned across every compiler stage
// boundary. It carries enough context for a single-line diagnostic
// (Kind + Message) without leaking internal state.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// New constructs an *Error with no underlying cause.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an *Error that wraps an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *Error with the same Kind, so that
// errors.Is(err, zkerr.New(zkerr.NoMatch, "")) style comparisons work
// without matching on Message or Cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors for errors.Is comparisons against a stable value, mirroring
// the common-error-variable convention seen in this pack's NFA packages.
var (
	ErrNoMatch    = &Error{Kind: NoMatch, Message: "no accepting run for input"}
	ErrNoValidPath = &Error{Kind: NoValidPath, Message: "no valid path through automaton"}
)
